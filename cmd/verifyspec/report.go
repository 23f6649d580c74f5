package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lsst/verify-sub000/measure"
	"github.com/lsst/verify-sub000/naming"
	"github.com/lsst/verify-sub000/spec"
	"github.com/lsst/verify-sub000/units"
)

// measurementEntry is one row of a measurements YAML file.
type measurementEntry struct {
	Metric string  `yaml:"metric"`
	Value  float64 `yaml:"value"`
	Unit   string  `yaml:"unit"`
}

func reportCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report FILE",
		Short: "Check a file of measurements against all matching specifications",
		Long: `Report reads a YAML list of measurements and evaluates each one
against every specification of its metric:

    - metric: validate_drp.PA1
      value: 4.0
      unit: mmag

Exits non-zero when any check fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}

			measurements, err := readMeasurements(args[0])
			if err != nil {
				return err
			}

			set, err := spec.LoadDirectory(cfg.Specs.Dir, logger)
			if err != nil {
				return err
			}

			report := measure.MakeReport(set, measurements)

			out := cmd.OutOrStdout()
			for _, row := range report.Rows {
				switch {
				case row.Reason != "":
					fmt.Fprintf(out, "ERROR %s: %s\n", row.Specification, row.Reason)
				case row.Passed:
					fmt.Fprintf(out, "PASS  %s: %s %s %s\n",
						row.Specification, row.Measured, row.Operator, row.Threshold)
				default:
					fmt.Fprintf(out, "FAIL  %s: %s %s %s\n",
						row.Specification, row.Measured, row.Operator, row.Threshold)
				}
			}

			if !report.Passed() {
				cmd.SilenceErrors = true
				return fmt.Errorf("%d of %d checks failed",
					len(report.Failures()), len(report.Rows))
			}
			fmt.Fprintf(out, "%d checks passed\n", len(report.Rows))
			return nil
		},
	}
}

func readMeasurements(path string) ([]*measure.Measurement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read measurements: %w", err)
	}

	var entries []measurementEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse measurements: %w", err)
	}

	measurements := make([]*measure.Measurement, 0, len(entries))
	for i, e := range entries {
		name, err := naming.Parse(e.Metric)
		if err != nil {
			return nil, fmt.Errorf("measurement %d: parse metric %q: %w", i, e.Metric, err)
		}
		if !name.IsMetric() || !name.IsFullyQualified() {
			return nil, fmt.Errorf("measurement %d: %q is not a fully-qualified metric name", i, e.Metric)
		}
		q, err := units.NewQuantity(e.Value, e.Unit)
		if err != nil {
			return nil, fmt.Errorf("measurement %d: %w", i, err)
		}
		measurements = append(measurements, measure.NewMeasurement(name, q))
	}
	return measurements, nil
}

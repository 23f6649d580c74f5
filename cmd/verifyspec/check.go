package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lsst/verify-sub000/measure"
	"github.com/lsst/verify-sub000/naming"
	"github.com/lsst/verify-sub000/spec"
	"github.com/lsst/verify-sub000/units"
)

func checkCmd(opts *appOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check NAME VALUE UNIT",
		Short: "Check a single measurement against a specification",
		Long: `Check evaluates VALUE UNIT against the resolved threshold of the
specification NAME. The measurement sits on the left of the comparison;
its unit must be commensurable with the threshold unit.

Exits non-zero when the specification is not satisfied.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}

			name, err := naming.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse name %q: %w", args[0], err)
			}
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parse value %q: %w", args[1], err)
			}
			measured, err := units.NewQuantity(value, args[2])
			if err != nil {
				return err
			}

			set, err := spec.LoadDirectory(cfg.Specs.Dir, logger)
			if err != nil {
				return err
			}
			sp, ok := set.Get(name)
			if !ok {
				return fmt.Errorf("specification %q not found", name)
			}

			warnMetricUnit(cfg.Metrics.Dir, sp, measured)

			passed, err := sp.Check(measured)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if passed {
				fmt.Fprintf(out, "PASS: %s %s %s\n", measured, sp.Operator, sp.Threshold)
				return nil
			}
			fmt.Fprintf(out, "FAIL: %s %s %s\n", measured, sp.Operator, sp.Threshold)
			cmd.SilenceErrors = true
			return fmt.Errorf("specification %q not satisfied", name)
		},
	}
}

// warnMetricUnit flags measurements whose unit disagrees with the metric
// definition. The metric registry is optional, so a missing directory or
// unknown metric is not an error.
func warnMetricUnit(metricsDir string, sp *spec.Specification, measured units.Quantity) {
	if metricsDir == "" {
		return
	}
	if _, err := os.Stat(metricsDir); err != nil {
		return
	}
	metrics, err := measure.LoadMetricsDirectory(metricsDir, nil)
	if err != nil {
		return
	}
	metricName, err := naming.New(sp.Name.Package, sp.Name.Metric, nil)
	if err != nil {
		return
	}
	if m, ok := metrics.Get(metricName); ok && !m.CheckUnit(measured) {
		fmt.Fprintf(os.Stderr, "warning: unit %s is incommensurable with metric %s (%s)\n",
			measured.Unit, m.Name, m.Unit)
	}
}

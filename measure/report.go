package measure

import (
	"github.com/lsst/verify-sub000/naming"
	"github.com/lsst/verify-sub000/spec"
	"github.com/lsst/verify-sub000/units"
)

// ReportRow is one specification checked against one measurement.
type ReportRow struct {
	Specification naming.Name
	Measured      units.Quantity
	Threshold     units.Quantity
	Operator      units.Operator
	Passed        bool

	// Reason is set when the check could not be evaluated, e.g. the
	// measurement's unit is incommensurable with the threshold.
	Reason string
}

// Report is the outcome of checking measurements against every applicable
// specification in a set.
type Report struct {
	Rows []ReportRow
}

// MakeReport checks each measurement against the specifications of its
// metric. Specifications with no matching measurement are skipped; a check
// that cannot be evaluated produces a row with a Reason instead of
// aborting the report.
func MakeReport(specs *spec.SpecificationSet, measurements []*Measurement) *Report {
	report := &Report{}
	for _, m := range measurements {
		sub := specs.Subset(m.Metric)
		for _, name := range sub.Names() {
			sp, ok := sub.Get(name)
			if !ok {
				continue
			}
			row := ReportRow{
				Specification: name,
				Measured:      m.Quantity,
				Threshold:     sp.Threshold,
				Operator:      sp.Operator,
			}
			passed, err := sp.Check(m.Quantity)
			if err != nil {
				row.Reason = err.Error()
			} else {
				row.Passed = passed
			}
			report.Rows = append(report.Rows, row)
		}
	}
	return report
}

// Passed reports whether every row passed its check.
func (r *Report) Passed() bool {
	for _, row := range r.Rows {
		if !row.Passed || row.Reason != "" {
			return false
		}
	}
	return true
}

// Failures returns the rows that failed or could not be evaluated.
func (r *Report) Failures() []ReportRow {
	var out []ReportRow
	for _, row := range r.Rows {
		if !row.Passed || row.Reason != "" {
			out = append(out, row)
		}
	}
	return out
}

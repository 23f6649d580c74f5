package measure

import (
	"fmt"

	"github.com/lsst/verify-sub000/document"
	"github.com/lsst/verify-sub000/naming"
	"github.com/lsst/verify-sub000/units"
)

// Metric is a named, unit-bearing quantity that can be measured. Metrics
// carry presentation metadata; the checkable thresholds live in
// specifications.
type Metric struct {
	// Name is the fully-qualified metric name.
	Name naming.Name

	// Unit is the metric's natural unit; measurements must be
	// commensurable with it.
	Unit units.Unit

	// Description is a short human summary.
	Description string

	// Reference locates the document that defines the metric.
	Reference Reference

	// Tags group related metrics for reporting.
	Tags []string
}

// Reference points into the defining document.
type Reference struct {
	Doc  string
	URL  string
	Page int
}

// NewMetricFromDocument builds a Metric from one entry of a metric
// registry file.
func NewMetricFromDocument(name naming.Name, doc *document.Document) (*Metric, error) {
	if !name.IsMetric() || !name.IsFullyQualified() {
		return nil, fmt.Errorf("metric name %q is not fully qualified: %w", name.String(), naming.ErrNotQualified)
	}

	unitStr, _ := doc.String("unit")
	unit, err := units.ParseUnit(unitStr)
	if err != nil {
		return nil, fmt.Errorf("metric %q: %w", name.String(), err)
	}

	m := &Metric{Name: name, Unit: unit}
	m.Description, _ = doc.String("description")
	if tags, ok := doc.StringList("tags"); ok {
		m.Tags = tags
	}
	if ref, ok := doc.Mapping("reference"); ok {
		m.Reference.Doc, _ = ref.String("doc")
		m.Reference.URL, _ = ref.String("url")
		if page, ok := ref.Float("page"); ok {
			m.Reference.Page = int(page)
		}
	}
	return m, nil
}

// CheckUnit reports whether a quantity is commensurable with the metric's
// unit.
func (m *Metric) CheckUnit(q units.Quantity) bool {
	return q.Unit.Dimension == m.Unit.Dimension
}

// HasTag reports whether the metric carries the given tag.
func (m *Metric) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

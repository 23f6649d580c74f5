package spec

import (
	"fmt"
	"slices"

	"github.com/lsst/verify-sub000/document"
	"github.com/lsst/verify-sub000/naming"
	"github.com/lsst/verify-sub000/telemetry"
	"github.com/lsst/verify-sub000/units"
)

// Specification is a resolved threshold specification: a named comparison
// of a measured quantity against a threshold, optionally scoped to a set
// of filters. Specifications are immutable once built.
type Specification struct {
	// Name is the fully-qualified specification name.
	Name naming.Name

	// Threshold is the comparison threshold.
	Threshold units.Quantity

	// Operator relates a measurement (left side) to the threshold
	// (right side).
	Operator units.Operator

	// Filters limits the specification to the named filters. A nil
	// slice means the specification applies in every filter.
	Filters []string

	// Dependencies holds named auxiliary data the specification was
	// derived from.
	Dependencies units.DatumMap
}

// NewFromDocument builds a Specification from a fully-resolved document.
// The document must carry name, package (directly or via a dotted name),
// value, and operator fields.
func NewFromDocument(doc *document.Document) (*Specification, error) {
	nameVal, ok := doc.String("name")
	if !ok {
		return nil, ErrMissingName
	}
	pack, _ := doc.String("package")
	metric, _ := doc.String("metric")

	name, err := naming.New(pack, metric, nameVal)
	if err != nil {
		return nil, fmt.Errorf("specification name: %w", err)
	}
	if !name.IsSpec() || !name.IsFullyQualified() {
		return nil, fmt.Errorf("specification name %q is not fully qualified: %w", name.String(), naming.ErrNotQualified)
	}

	value, ok := doc.Float("value")
	if !ok {
		return nil, fmt.Errorf("specification %q has no numeric value", name.String())
	}
	unitStr, _ := doc.String("unit")
	threshold, err := units.NewQuantity(value, unitStr)
	if err != nil {
		return nil, fmt.Errorf("specification %q: %w", name.String(), err)
	}

	opStr, ok := doc.String("operator")
	if !ok {
		return nil, fmt.Errorf("specification %q has no operator", name.String())
	}
	op, err := units.ParseOperator(opStr)
	if err != nil {
		return nil, fmt.Errorf("specification %q: %w", name.String(), err)
	}

	var filters []string
	if f, ok := doc.StringList("filters"); ok {
		filters = f
	}

	deps, err := decodeDependencies(doc)
	if err != nil {
		return nil, fmt.Errorf("specification %q: %w", name.String(), err)
	}

	return &Specification{
		Name:         name,
		Threshold:    threshold,
		Operator:     op,
		Filters:      filters,
		Dependencies: deps,
	}, nil
}

// Check evaluates a measured quantity against the specification. The
// measurement is converted to the threshold's unit first; incommensurable
// units fail the call without invalidating the specification.
func (s *Specification) Check(measurement units.Quantity) (bool, error) {
	converted, err := measurement.To(s.Threshold.Unit)
	if err != nil {
		telemetry.ChecksTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("check %q: %w", s.Name.String(), err)
	}
	ok := s.Operator.Compare(converted.Value, s.Threshold.Value)
	if ok {
		telemetry.ChecksTotal.WithLabelValues("pass").Inc()
	} else {
		telemetry.ChecksTotal.WithLabelValues("fail").Inc()
	}
	return ok, nil
}

// AppliesTo reports whether the specification is in effect for the named
// filter. Specifications without a filter list apply everywhere.
func (s *Specification) AppliesTo(filter string) bool {
	if s.Filters == nil {
		return true
	}
	return slices.Contains(s.Filters, filter)
}

// decodeDependencies reads the optional dependencies field: a list of
// single-key mappings (or one mapping) whose values are either quantity
// mappings (value, unit, label, description) or bare numbers.
func decodeDependencies(doc *document.Document) (units.DatumMap, error) {
	raw, ok := doc.Get("dependencies")
	if !ok {
		return nil, nil
	}

	deps := make(units.DatumMap)
	addEntry := func(m *document.Document) error {
		for _, key := range m.Keys() {
			v, _ := m.Get(key)
			datum, err := decodeDatum(key, v)
			if err != nil {
				return err
			}
			deps[key] = datum
		}
		return nil
	}

	switch tv := raw.(type) {
	case document.List:
		for _, item := range tv {
			m, ok := item.(*document.Document)
			if !ok {
				return nil, fmt.Errorf("dependency entries must be mappings, got %T", item)
			}
			if err := addEntry(m); err != nil {
				return nil, err
			}
		}
	case *document.Document:
		if err := addEntry(tv); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("dependencies must be a list or mapping, got %T", raw)
	}
	return deps, nil
}

func decodeDatum(key string, v document.Value) (units.Datum, error) {
	switch tv := v.(type) {
	case *document.Document:
		value, ok := tv.Float("value")
		if !ok {
			return units.Datum{}, fmt.Errorf("dependency %q has no numeric value", key)
		}
		unitStr, _ := tv.String("unit")
		q, err := units.NewQuantity(value, unitStr)
		if err != nil {
			return units.Datum{}, fmt.Errorf("dependency %q: %w", key, err)
		}
		label, _ := tv.String("label")
		descr, _ := tv.String("description")
		return units.Datum{Quantity: q, Label: label, Description: descr}, nil
	case document.Scalar:
		switch n := tv.V.(type) {
		case int:
			return units.Datum{Quantity: units.Quantity{Value: float64(n), Unit: units.MustUnit("")}}, nil
		case float64:
			return units.Datum{Quantity: units.Quantity{Value: n, Unit: units.MustUnit("")}}, nil
		default:
			return units.Datum{}, fmt.Errorf("dependency %q must be numeric or a quantity mapping", key)
		}
	default:
		return units.Datum{}, fmt.Errorf("dependency %q must be numeric or a quantity mapping", key)
	}
}

package naming

import (
	"fmt"
	"strings"
)

// Name identifies a package, a metric, or a specification. The zero value
// for a segment means the segment is absent. Name is a comparable value
// type: equality is structural over the three segments and a Name can be
// used directly as a map key.
type Name struct {
	Package string
	Metric  string
	Spec    string
}

// Parse parses a dotted name string. One segment is a package name, two
// segments are package.metric, three are package.metric.spec. Any other
// arity fails with ErrMalformed.
func Parse(s string) (Name, error) {
	segments, err := splitSegments(s)
	if err != nil {
		return Name{}, err
	}
	switch len(segments) {
	case 1:
		return Name{Package: segments[0]}, nil
	case 2:
		return Name{Package: segments[0], Metric: segments[1]}, nil
	case 3:
		return Name{Package: segments[0], Metric: segments[1], Spec: segments[2]}, nil
	default:
		return Name{}, fmt.Errorf("%w: %q has %d segments, want 1-3", ErrMalformed, s, len(segments))
	}
}

// New builds a Name from per-role arguments. Each argument may be nil, a
// string, or a Name whose present segments are imported wholesale. String
// arguments are parsed by role: a package must be a bare identifier, a
// metric may be "metric" or "package.metric", and a spec may be "spec",
// "metric.spec" or "package.metric.spec". Two arguments supplying
// different values for the same segment fail with ErrConflict.
func New(pack, metric, spec any) (Name, error) {
	var n Name

	packName, err := coerceSegment(pack, "package", parsePackageSegment)
	if err != nil {
		return Name{}, err
	}
	if err := n.adopt(packName); err != nil {
		return Name{}, err
	}

	metricName, err := coerceSegment(metric, "metric", parseMetricSegment)
	if err != nil {
		return Name{}, err
	}
	if err := n.adopt(metricName); err != nil {
		return Name{}, err
	}

	specName, err := coerceSegment(spec, "spec", parseSpecSegment)
	if err != nil {
		return Name{}, err
	}
	if err := n.adopt(specName); err != nil {
		return Name{}, err
	}

	if n == (Name{}) {
		return Name{}, fmt.Errorf("%w: no segments provided", ErrMalformed)
	}
	if err := n.validate(); err != nil {
		return Name{}, err
	}
	return n, nil
}

// IsPackage reports whether the name addresses a package and nothing below.
func (n Name) IsPackage() bool {
	return n.Package != "" && n.Metric == "" && n.Spec == ""
}

// IsMetric reports whether the name addresses a metric (and not a spec).
func (n Name) IsMetric() bool {
	return n.Metric != "" && n.Spec == ""
}

// IsSpec reports whether the name addresses a specification.
func (n Name) IsSpec() bool {
	return n.Spec != ""
}

// IsFullyQualified reports whether every segment required for the name's
// role is present.
func (n Name) IsFullyQualified() bool {
	switch {
	case n.Spec != "":
		return n.Package != "" && n.Metric != ""
	case n.Metric != "":
		return n.Package != ""
	default:
		return n.Package != ""
	}
}

// IsRelative reports whether the name is a metric-relative spec name:
// spec and metric present, package absent.
func (n Name) IsRelative() bool {
	return n.Spec != "" && n.Metric != "" && n.Package == ""
}

// String renders the canonical dotted form, omitting absent leading
// segments.
func (n Name) String() string {
	var parts []string
	if n.Package != "" {
		parts = append(parts, n.Package)
	}
	if n.Metric != "" {
		parts = append(parts, n.Metric)
	}
	if n.Spec != "" {
		parts = append(parts, n.Spec)
	}
	return strings.Join(parts, ".")
}

// FQN returns the fully-qualified dotted form, failing with
// ErrNotQualified if a required segment is absent.
func (n Name) FQN() (string, error) {
	if !n.IsFullyQualified() {
		return "", fmt.Errorf("%w: %q", ErrNotQualified, n.String())
	}
	return n.String(), nil
}

// RelativeName returns the metric-relative "metric.spec" form of a spec
// name. It fails if the metric or spec segment is absent.
func (n Name) RelativeName() (string, error) {
	if n.Metric == "" || n.Spec == "" {
		return "", fmt.Errorf("%w: %q has no metric-relative form", ErrNotQualified, n.String())
	}
	return n.Metric + "." + n.Spec, nil
}

// Contains reports whether other is addressed below n: a package name
// contains the metric and spec names of that package, and a metric name
// contains the spec names of that metric (packages must agree when both
// names carry one). A name never contains itself, and spec names contain
// nothing.
func (n Name) Contains(other Name) bool {
	switch {
	case n.IsPackage():
		return other.Metric != "" && other.Package == n.Package
	case n.IsMetric():
		if !other.IsSpec() || other.Metric != n.Metric {
			return false
		}
		if n.Package != "" && other.Package != "" {
			return other.Package == n.Package
		}
		return true
	default:
		return false
	}
}

// adopt merges the present segments of other into n, failing with
// ErrConflict when a segment is already set to a different value.
func (n *Name) adopt(other Name) error {
	if err := mergeSegment(&n.Package, other.Package, "package"); err != nil {
		return err
	}
	if err := mergeSegment(&n.Metric, other.Metric, "metric"); err != nil {
		return err
	}
	return mergeSegment(&n.Spec, other.Spec, "spec")
}

func (n Name) validate() error {
	if n.Spec != "" && n.Package != "" && n.Metric == "" {
		return fmt.Errorf("%w: package %q with spec %q", ErrMetricGap, n.Package, n.Spec)
	}
	return nil
}

func mergeSegment(dst *string, src, role string) error {
	if src == "" {
		return nil
	}
	if *dst != "" && *dst != src {
		return fmt.Errorf("%w: %s %q vs %q", ErrConflict, role, *dst, src)
	}
	*dst = src
	return nil
}

// coerceSegment turns one New argument into a partial Name using the
// role-specific string parser.
func coerceSegment(arg any, role string, parse func(string) (Name, error)) (Name, error) {
	switch v := arg.(type) {
	case nil:
		return Name{}, nil
	case Name:
		return v, nil
	case *Name:
		if v == nil {
			return Name{}, nil
		}
		return *v, nil
	case string:
		if v == "" {
			return Name{}, nil
		}
		return parse(v)
	default:
		return Name{}, fmt.Errorf("%w: %s argument must be a string or Name, got %T", ErrMalformed, role, arg)
	}
}

func parsePackageSegment(s string) (Name, error) {
	segments, err := splitSegments(s)
	if err != nil {
		return Name{}, err
	}
	if len(segments) != 1 {
		return Name{}, fmt.Errorf("%w: package %q must be a bare identifier", ErrMalformed, s)
	}
	return Name{Package: segments[0]}, nil
}

func parseMetricSegment(s string) (Name, error) {
	segments, err := splitSegments(s)
	if err != nil {
		return Name{}, err
	}
	switch len(segments) {
	case 1:
		return Name{Metric: segments[0]}, nil
	case 2:
		return Name{Package: segments[0], Metric: segments[1]}, nil
	default:
		return Name{}, fmt.Errorf("%w: metric %q has %d segments, want 1-2", ErrMalformed, s, len(segments))
	}
}

func parseSpecSegment(s string) (Name, error) {
	segments, err := splitSegments(s)
	if err != nil {
		return Name{}, err
	}
	switch len(segments) {
	case 1:
		return Name{Spec: segments[0]}, nil
	case 2:
		return Name{Metric: segments[0], Spec: segments[1]}, nil
	case 3:
		return Name{Package: segments[0], Metric: segments[1], Spec: segments[2]}, nil
	default:
		return Name{}, fmt.Errorf("%w: spec %q has %d segments, want 1-3", ErrMalformed, s, len(segments))
	}
}

func splitSegments(s string) ([]string, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrMalformed)
	}
	segments := strings.Split(s, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrMalformed, s)
		}
	}
	return segments, nil
}

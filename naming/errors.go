package naming

import "errors"

// Name construction errors.
var (
	// ErrMalformed is returned when a name string cannot be parsed.
	ErrMalformed = errors.New("malformed name")

	// ErrConflict is returned when two arguments supply different values
	// for the same name segment.
	ErrConflict = errors.New("conflicting name segments")

	// ErrMetricGap is returned when a name has a package and a spec
	// segment but no metric segment between them.
	ErrMetricGap = errors.New("metric segment required between package and spec")

	// ErrNotQualified is returned when a fully-qualified rendering is
	// requested of a name that is missing required segments.
	ErrNotQualified = errors.New("name is not fully qualified")
)

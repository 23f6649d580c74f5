package spec

import (
	"errors"
	"fmt"
)

// Document-shape errors, fatal at ingest time.
var (
	// ErrMissingName is returned for a specification document without a
	// name (or a partial without an id).
	ErrMissingName = errors.New("document has no name or id")

	// ErrBadBaseField is returned when a base field is neither a string
	// nor a list of strings.
	ErrBadBaseField = errors.New("base field must be a string or a list of strings")
)

// UnresolvedError reports a base reference whose target is not in the
// repository yet. It is recoverable: the fix-point loop retries the
// document after more documents resolve.
type UnresolvedError struct {
	Ref string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("base reference %q is not resolved yet", e.Ref)
}

// ResolutionError reports a document that can never resolve: its base
// chain is cyclic or references a document that was never loaded. Fatal at
// load time.
type ResolutionError struct {
	// Doc is the name of the unresolvable document.
	Doc string
	// Ref is the first reference that could not be satisfied.
	Ref string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("specification %q cannot be resolved: base reference %q is cyclic or missing", e.Doc, e.Ref)
}

// Package spec implements threshold specifications and the specification
// repository.
//
// A SpecificationSet ingests YAML specification and partial documents,
// resolves their base-inheritance chains with a fix-point loop (a
// document's base may appear later in load order), and owns the resulting
// immutable Specification objects. A Specification compares a measured
// quantity against its threshold; resolution and checking are the two
// halves of the verification core.
package spec

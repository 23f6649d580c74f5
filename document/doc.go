// Package document provides the in-memory representation of one parsed
// YAML specification or partial document, and the merge algorithm used to
// resolve document inheritance.
//
// A Document preserves the key order of the source mapping. Values are a
// tagged union of nested mappings, sequences, and scalars, so the merge
// rules (recurse into mappings, append sequences, overlay wins otherwise)
// dispatch on an explicit type switch rather than on reflection.
package document

// Package naming provides the qualified-name algebra for metrics and
// specifications.
//
// A Name addresses a package, a metric within a package, or a specification
// within a metric. Names come in fully-qualified ("validate_drp.PA1.design"),
// relative ("PA1.design") and bare ("design") forms; the algebra normalizes
// all of them to one canonical rendering and enforces the composition rules
// between the three segments.
//
// Partials, the reusable document fragments specifications inherit from, are
// addressed separately by PartialID ("validate_drp:LPM-17#PA1-base").
package naming

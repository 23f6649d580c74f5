// Package measure provides the metric registry and measurement aggregates
// that specifications are checked against: Metric definitions loaded from
// YAML, Measurement values, shared Blob data keyed by uuid, and the
// pass/fail Report over a specification set.
package measure

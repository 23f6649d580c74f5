package document

// Merge combines a base document with an overriding one and returns a new
// document. Neither input is mutated; a base may be merged into any number
// of overlays.
//
// Field rules, per key of overlay:
//   - absent in base: copied into the result
//   - both values are mappings: merged recursively
//   - both values are sequences: base items first, overlay items appended
//     (duplicates retained)
//   - anything else, including mismatched kinds: overlay wins
//
// Keys present only in base are copied unchanged.
func Merge(base, overlay *Document) *Document {
	result := base.Copy()
	for _, key := range overlay.keys {
		overlayValue := overlay.values[key]
		baseValue, ok := result.values[key]
		if !ok {
			result.Set(key, overlayValue.copyValue())
			continue
		}
		result.Set(key, mergeValues(baseValue, overlayValue))
	}
	return result
}

func mergeValues(base, overlay Value) Value {
	switch ov := overlay.(type) {
	case *Document:
		if bv, ok := base.(*Document); ok {
			return Merge(bv, ov)
		}
	case List:
		if bv, ok := base.(List); ok {
			merged := make(List, 0, len(bv)+len(ov))
			merged = append(merged, bv.copyValue().(List)...)
			merged = append(merged, ov.copyValue().(List)...)
			return merged
		}
	}
	return overlay.copyValue()
}

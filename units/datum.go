package units

// Datum is a quantity annotated for presentation: a label (typically a
// short math symbol) and a human description.
type Datum struct {
	Quantity    Quantity
	Label       string
	Description string
}

// DatumMap holds named auxiliary data, such as a specification's
// dependencies. Lookup is explicit so that an absent key stays
// distinguishable from a key stored with a zero datum.
type DatumMap map[string]Datum

// Get returns the datum stored under key and whether the key is present.
func (m DatumMap) Get(key string) (Datum, bool) {
	d, ok := m[key]
	return d, ok
}

// Keys returns the stored keys in unspecified order.
func (m DatumMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

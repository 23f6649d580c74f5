package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeScalarOverlayWins(t *testing.T) {
	base := mustDecode(t, "value: 5\nunit: mag\n")
	overlay := mustDecode(t, "value: 10\n")

	merged := Merge(base, overlay)

	v, _ := merged.Float("value")
	assert.Equal(t, 10.0, v)
	u, _ := merged.String("unit")
	assert.Equal(t, "mag", u)
}

func TestMergeBaseOnlyKeysSurvive(t *testing.T) {
	base := mustDecode(t, "a: 1\nb: 2\n")
	overlay := mustDecode(t, "c: 3\n")

	merged := Merge(base, overlay)
	assert.Equal(t, []string{"a", "b", "c"}, merged.Keys())
}

func TestMergeMappingsRecurse(t *testing.T) {
	base := mustDecode(t, `
metadata:
  owner: drp
  release: v1
`)
	overlay := mustDecode(t, `
metadata:
  release: v2
  extra: true
`)

	merged := Merge(base, overlay)
	meta, ok := merged.Mapping("metadata")
	require.True(t, ok)

	owner, _ := meta.String("owner")
	assert.Equal(t, "drp", owner)
	release, _ := meta.String("release")
	assert.Equal(t, "v2", release)
	assert.True(t, meta.Has("extra"))
}

func TestMergeListsAppendInOrder(t *testing.T) {
	base := mustDecode(t, "items: [1, 2]\n")
	overlay := mustDecode(t, "items: [3]\n")

	merged := Merge(base, overlay)
	items, ok := merged.Get("items")
	require.True(t, ok)
	assert.Equal(t, List{Scalar{V: 1}, Scalar{V: 2}, Scalar{V: 3}}, items)
}

func TestMergeMismatchedKindsOverlayWins(t *testing.T) {
	base := mustDecode(t, "field: [1, 2]\n")
	overlay := mustDecode(t, "field: scalar-now\n")

	merged := Merge(base, overlay)
	v, ok := merged.String("field")
	require.True(t, ok)
	assert.Equal(t, "scalar-now", v)

	// And the other direction.
	merged = Merge(overlay, base)
	items, ok := merged.Get("field")
	require.True(t, ok)
	assert.Equal(t, List{Scalar{V: 1}, Scalar{V: 2}}, items)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := mustDecode(t, "items: [1]\nnested:\n  a: 1\n")
	overlay := mustDecode(t, "items: [2]\nnested:\n  b: 2\n")
	baseCopy := base.Copy()
	overlayCopy := overlay.Copy()

	merged := Merge(base, overlay)
	// Mutating the result must not leak back either.
	nested, _ := merged.Mapping("nested")
	nested.Set("a", Scalar{V: 99})

	assert.True(t, base.Equal(baseCopy))
	assert.True(t, overlay.Equal(overlayCopy))
}

func TestMergeBaseReusableAcrossOverlays(t *testing.T) {
	base := mustDecode(t, "items: [1]\n")
	first := Merge(base, mustDecode(t, "items: [2]\n"))
	second := Merge(base, mustDecode(t, "items: [3]\n"))

	fi, _ := first.Get("items")
	si, _ := second.Get("items")
	assert.Equal(t, List{Scalar{V: 1}, Scalar{V: 2}}, fi)
	assert.Equal(t, List{Scalar{V: 1}, Scalar{V: 3}}, si)
}

// Merging a document with itself keeps scalars but doubles lists; a
// document must never list itself as its own base.
func TestMergeSelfDoublesLists(t *testing.T) {
	doc := mustDecode(t, "value: 5\nitems: [1, 2]\n")

	merged := Merge(doc, doc)

	v, _ := merged.Float("value")
	assert.Equal(t, 5.0, v)
	items, _ := merged.Get("items")
	assert.Equal(t, List{Scalar{V: 1}, Scalar{V: 2}, Scalar{V: 1}, Scalar{V: 2}}, items)
}

func TestMergeChainListOrder(t *testing.T) {
	a := mustDecode(t, "items: [1, 2]\n")
	b := mustDecode(t, "items: [3]\n")
	c := mustDecode(t, "items: [4]\n")

	merged := Merge(Merge(a, b), c)
	items, _ := merged.Get("items")
	assert.Equal(t, List{Scalar{V: 1}, Scalar{V: 2}, Scalar{V: 3}, Scalar{V: 4}}, items)
}

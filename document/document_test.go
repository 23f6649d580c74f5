package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func mustDecode(t *testing.T, src string) *Document {
	t.Helper()
	docs, err := DecodeStream(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	return docs[0]
}

func TestDecodePreservesKeyOrder(t *testing.T) {
	doc := mustDecode(t, `
name: design
zebra: 1
apple: 2
middle:
  c: 3
  a: 4
`)
	assert.Equal(t, []string{"name", "zebra", "apple", "middle"}, doc.Keys())

	middle, ok := doc.Mapping("middle")
	require.True(t, ok)
	assert.Equal(t, []string{"c", "a"}, middle.Keys())
}

func TestDecodeStreamMultipleDocuments(t *testing.T) {
	docs, err := DecodeStream(strings.NewReader(`
name: design
value: 5
---
id: base-partial
operator: "<"
---
`))
	require.NoError(t, err)
	require.Len(t, docs, 2)

	name, ok := docs[0].String("name")
	require.True(t, ok)
	assert.Equal(t, "design", name)

	id, ok := docs[1].String("id")
	require.True(t, ok)
	assert.Equal(t, "base-partial", id)
}

func TestDecodeRejectsNonMapping(t *testing.T) {
	_, err := DecodeStream(strings.NewReader("- just\n- a\n- list\n"))
	assert.Error(t, err)
}

func TestDecodeAnchorsAndAliases(t *testing.T) {
	doc := mustDecode(t, `
defaults: &defaults
  operator: "<"
  unit: mag
spec: *defaults
`)
	spec, ok := doc.Mapping("spec")
	require.True(t, ok)
	op, ok := spec.String("operator")
	require.True(t, ok)
	assert.Equal(t, "<", op)
}

func TestScalarAccessors(t *testing.T) {
	doc := mustDecode(t, `
name: design
value: 5
ratio: 2.5
filters: r
tags: [photometry, monthly]
`)
	v, ok := doc.Float("value")
	require.True(t, ok)
	assert.Equal(t, 5.0, v)

	r, ok := doc.Float("ratio")
	require.True(t, ok)
	assert.Equal(t, 2.5, r)

	// A lone string coerces to a one-element list.
	filters, ok := doc.StringList("filters")
	require.True(t, ok)
	assert.Equal(t, []string{"r"}, filters)

	tags, ok := doc.StringList("tags")
	require.True(t, ok)
	assert.Equal(t, []string{"photometry", "monthly"}, tags)

	_, ok = doc.Float("name")
	assert.False(t, ok)
	_, ok = doc.String("missing")
	assert.False(t, ok)
}

func TestSetGetDelete(t *testing.T) {
	doc := New()
	doc.Set("a", Scalar{V: 1})
	doc.Set("b", Scalar{V: 2})
	doc.Set("a", Scalar{V: 3}) // overwrite keeps position

	assert.Equal(t, []string{"a", "b"}, doc.Keys())
	v, ok := doc.Get("a")
	require.True(t, ok)
	assert.Equal(t, Scalar{V: 3}, v)

	doc.Delete("a")
	assert.Equal(t, []string{"b"}, doc.Keys())
	assert.False(t, doc.Has("a"))
}

func TestCopyIsDeep(t *testing.T) {
	doc := mustDecode(t, `
nested:
  key: original
items: [1, 2]
`)
	cp := doc.Copy()
	nested, _ := cp.Mapping("nested")
	nested.Set("key", Scalar{V: "changed"})
	cp.Set("items", List{Scalar{V: 9}})

	orig, _ := doc.Mapping("nested")
	v, _ := orig.String("key")
	assert.Equal(t, "original", v)
	items, _ := doc.Get("items")
	assert.Equal(t, List{Scalar{V: 1}, Scalar{V: 2}}, items)
}

func TestMarshalRoundTrip(t *testing.T) {
	src := `name: design
zebra: 1
apple: 2
base:
    - "#base1"
    - "#base2"
`
	doc := mustDecode(t, src)
	out, err := yaml.Marshal(doc)
	require.NoError(t, err)

	again := mustDecode(t, string(out))
	assert.True(t, doc.Equal(again))
	assert.Equal(t, []string{"name", "zebra", "apple", "base"}, again.Keys())
}

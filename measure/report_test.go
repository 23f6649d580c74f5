package measure

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsst/verify-sub000/document"
	"github.com/lsst/verify-sub000/naming"
	"github.com/lsst/verify-sub000/spec"
	"github.com/lsst/verify-sub000/units"
)

func loadSpecs(t *testing.T, yamlSrc string) *spec.SpecificationSet {
	t.Helper()
	docs, err := document.DecodeStream(strings.NewReader(yamlSrc))
	require.NoError(t, err)
	sources := make([]spec.SourcedDocument, len(docs))
	for i, doc := range docs {
		sources[i] = spec.SourcedDocument{
			Doc:    doc,
			Source: spec.Source{Package: "validate_drp", Path: "LPM-17"},
		}
	}
	set := spec.NewSet(nil)
	require.NoError(t, set.Ingest(sources))
	return set
}

func TestMakeReport(t *testing.T) {
	specs := loadSpecs(t, `
name: PA1.design
value: 5
unit: mag
operator: "<"
---
name: PA1.stretch
value: 3
unit: mag
operator: "<"
---
name: AM1.design
value: 10
unit: marcsec
operator: "<="
`)

	pa1, err := naming.Parse("validate_drp.PA1")
	require.NoError(t, err)
	q, err := units.NewQuantity(4, "mag")
	require.NoError(t, err)

	report := MakeReport(specs, []*Measurement{NewMeasurement(pa1, q)})

	// Only PA1's two specifications are checked, in name order.
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "validate_drp.PA1.design", report.Rows[0].Specification.String())
	assert.True(t, report.Rows[0].Passed) // 4 < 5
	assert.Equal(t, "validate_drp.PA1.stretch", report.Rows[1].Specification.String())
	assert.False(t, report.Rows[1].Passed) // 4 < 3 fails

	assert.False(t, report.Passed())
	require.Len(t, report.Failures(), 1)
	assert.Equal(t, "validate_drp.PA1.stretch", report.Failures()[0].Specification.String())
}

func TestMakeReportUnitConversion(t *testing.T) {
	specs := loadSpecs(t, `
name: PA1.design
value: 5
unit: mag
operator: "<"
`)
	pa1, err := naming.Parse("validate_drp.PA1")
	require.NoError(t, err)
	q, err := units.NewQuantity(4000, "mmag")
	require.NoError(t, err)

	report := MakeReport(specs, []*Measurement{NewMeasurement(pa1, q)})
	require.Len(t, report.Rows, 1)
	assert.True(t, report.Rows[0].Passed)
	assert.True(t, report.Passed())
}

func TestMakeReportIncompatibleUnits(t *testing.T) {
	specs := loadSpecs(t, `
name: PA1.design
value: 5
unit: mag
operator: "<"
`)
	pa1, err := naming.Parse("validate_drp.PA1")
	require.NoError(t, err)
	q, err := units.NewQuantity(4, "arcsec")
	require.NoError(t, err)

	report := MakeReport(specs, []*Measurement{NewMeasurement(pa1, q)})
	require.Len(t, report.Rows, 1)
	assert.False(t, report.Rows[0].Passed)
	assert.NotEmpty(t, report.Rows[0].Reason)
	assert.False(t, report.Passed())
}

func TestMeasurementBlobs(t *testing.T) {
	pa1, err := naming.Parse("validate_drp.PA1")
	require.NoError(t, err)
	q, err := units.NewQuantity(4, "mag")
	require.NoError(t, err)

	m := NewMeasurement(pa1, q)
	blob := NewBlob("residuals", units.DatumMap{
		"rms": {Quantity: units.Quantity{Value: 12, Unit: units.MustUnit("mmag")}},
	})
	m.Link(blob)

	require.Len(t, m.BlobRefs, 1)
	assert.Equal(t, blob.ID, m.BlobRefs[0])

	// Identifiers are unique per blob.
	other := NewBlob("residuals", nil)
	assert.NotEqual(t, blob.ID, other.ID)
	assert.NotEmpty(t, blob.ID)
}

package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit("mmag")
	require.NoError(t, err)
	assert.Equal(t, Magnitude, u.Dimension)
	assert.Equal(t, 1e-3, u.Scale)

	_, err = ParseUnit("furlong")
	assert.ErrorIs(t, err, ErrUnknownUnit)

	// Empty string is dimensionless.
	u, err = ParseUnit("")
	require.NoError(t, err)
	assert.Equal(t, Dimensionless, u.Dimension)
}

func TestQuantityConversion(t *testing.T) {
	tests := []struct {
		value float64
		from  string
		to    string
		want  float64
	}{
		{4000, "mmag", "mag", 4},
		{4, "mag", "mmag", 4000},
		{1, "deg", "arcmin", 60},
		{500, "mas", "arcsec", 0.5},
		{2, "min", "s", 120},
		{1500, "mJy", "Jy", 1.5},
		{5, "mag", "mag", 5},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			q, err := NewQuantity(tt.value, tt.from)
			require.NoError(t, err)
			got, err := q.To(MustUnit(tt.to))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Value, 1e-9)
			assert.Equal(t, tt.to, got.Unit.Symbol)
		})
	}
}

func TestQuantityConversionIncompatible(t *testing.T) {
	q, err := NewQuantity(4, "arcsec")
	require.NoError(t, err)

	_, err = q.To(MustUnit("mag"))
	require.Error(t, err)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "arcsec", convErr.From.Symbol)
	assert.Equal(t, "mag", convErr.To.Symbol)
}

func TestQuantityString(t *testing.T) {
	q, err := NewQuantity(5, "mag")
	require.NoError(t, err)
	assert.Equal(t, "5 mag", q.String())

	q, err = NewQuantity(0.25, "")
	require.NoError(t, err)
	assert.Equal(t, "0.25", q.String())
}

func TestParseOperator(t *testing.T) {
	for _, symbol := range []string{"<", "<=", ">", ">=", "==", "!="} {
		op, err := ParseOperator(symbol)
		require.NoError(t, err)
		assert.Equal(t, symbol, op.String())
	}

	_, err := ParseOperator("<>")
	assert.ErrorIs(t, err, ErrUnknownOperator)
}

// Compare keeps the measured value on the left of the operator.
func TestOperatorCompareOrientation(t *testing.T) {
	tests := []struct {
		op                  Operator
		measured, threshold float64
		want                bool
	}{
		{OpLess, 4, 5, true},
		{OpLess, 5, 5, false},
		{OpLess, 6, 5, false},
		{OpLessEqual, 5, 5, true},
		{OpGreater, 6, 5, true},
		{OpGreater, 4, 5, false},
		{OpGreaterEqual, 5, 5, true},
		{OpEqual, 5, 5, true},
		{OpEqual, 4, 5, false},
		{OpNotEqual, 4, 5, true},
		{OpNotEqual, 5, 5, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.Compare(tt.measured, tt.threshold))
		})
	}
}

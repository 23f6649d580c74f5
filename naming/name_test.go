package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  Name
	}{
		{"validate_drp", Name{Package: "validate_drp"}},
		{"validate_drp.PA1", Name{Package: "validate_drp", Metric: "PA1"}},
		{"validate_drp.PA1.design", Name{Package: "validate_drp", Metric: "PA1", Spec: "design"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
			assert.Equal(t, tt.input, n.String())
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, input := range []string{"", "a.b.c.d", "a..c", ".a", "a."} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestNewFromStrings(t *testing.T) {
	tests := []struct {
		name    string
		pack    any
		metric  any
		spec    any
		want    Name
		wantErr error
	}{
		{
			name: "explicit segments",
			pack: "validate_drp", metric: "PA1", spec: "design",
			want: Name{Package: "validate_drp", Metric: "PA1", Spec: "design"},
		},
		{
			name:   "dotted metric",
			metric: "validate_drp.PA1",
			want:   Name{Package: "validate_drp", Metric: "PA1"},
		},
		{
			name: "dotted spec",
			spec: "validate_drp.PA1.design",
			want: Name{Package: "validate_drp", Metric: "PA1", Spec: "design"},
		},
		{
			name: "relative spec",
			spec: "PA1.design",
			want: Name{Metric: "PA1", Spec: "design"},
		},
		{
			name: "package with relative spec",
			pack: "validate_drp", spec: "PA1.design",
			want: Name{Package: "validate_drp", Metric: "PA1", Spec: "design"},
		},
		{
			name: "agreeing overlap is not a conflict",
			pack: "validate_drp", metric: "validate_drp.PA1",
			want: Name{Package: "validate_drp", Metric: "PA1"},
		},
		{
			name: "conflicting packages",
			pack: "validate_drp", metric: "other_pkg.PA1",
			wantErr: ErrConflict,
		},
		{
			name: "conflicting metrics",
			metric: "PA1", spec: "PA2.design",
			wantErr: ErrConflict,
		},
		{
			name: "metric gap",
			pack: "validate_drp", spec: "design",
			wantErr: ErrMetricGap,
		},
		{
			name:    "no segments",
			wantErr: ErrMalformed,
		},
		{
			name: "dotted package",
			pack: "validate_drp.PA1",
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(tt.pack, tt.metric, tt.spec)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestNewFromNames(t *testing.T) {
	pkg, err := New("validate_drp", nil, nil)
	require.NoError(t, err)
	metric, err := New(pkg, "PA1", nil)
	require.NoError(t, err)
	spec, err := New(nil, metric, "design")
	require.NoError(t, err)

	// Same name built from explicit strings.
	direct, err := New("validate_drp", "PA1", "design")
	require.NoError(t, err)

	assert.Equal(t, direct, spec)

	// A Name argument conflicts like a string argument would.
	other, err := New("other_pkg", nil, nil)
	require.NoError(t, err)
	_, err = New(other, metric, "design")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestNameClassification(t *testing.T) {
	tests := []struct {
		name                                             string
		n                                                Name
		isPackage, isMetric, isSpec, isFQ, isRelative bool
	}{
		{"package", Name{Package: "pkg"}, true, false, false, true, false},
		{"fq metric", Name{Package: "pkg", Metric: "M"}, false, true, false, true, false},
		{"bare metric", Name{Metric: "M"}, false, true, false, false, false},
		{"fq spec", Name{Package: "pkg", Metric: "M", Spec: "design"}, false, false, true, true, false},
		{"relative spec", Name{Metric: "M", Spec: "design"}, false, false, true, false, true},
		{"bare spec", Name{Spec: "design"}, false, false, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isPackage, tt.n.IsPackage(), "IsPackage")
			assert.Equal(t, tt.isMetric, tt.n.IsMetric(), "IsMetric")
			assert.Equal(t, tt.isSpec, tt.n.IsSpec(), "IsSpec")
			assert.Equal(t, tt.isFQ, tt.n.IsFullyQualified(), "IsFullyQualified")
			assert.Equal(t, tt.isRelative, tt.n.IsRelative(), "IsRelative")
		})
	}
}

func TestNameRendering(t *testing.T) {
	fq := Name{Package: "pkg", Metric: "M", Spec: "design"}

	s, err := fq.FQN()
	require.NoError(t, err)
	assert.Equal(t, "pkg.M.design", s)

	rel, err := fq.RelativeName()
	require.NoError(t, err)
	assert.Equal(t, "M.design", rel)

	relative := Name{Metric: "M", Spec: "design"}
	assert.Equal(t, "M.design", relative.String())
	_, err = relative.FQN()
	assert.ErrorIs(t, err, ErrNotQualified)

	bare := Name{Spec: "design"}
	assert.Equal(t, "design", bare.String())
	_, err = bare.RelativeName()
	assert.ErrorIs(t, err, ErrNotQualified)
}

func TestNameContains(t *testing.T) {
	mustParse := func(s string) Name {
		n, err := Parse(s)
		require.NoError(t, err)
		return n
	}

	tests := []struct {
		outer, inner Name
		want         bool
	}{
		{mustParse("pkg"), mustParse("pkg.M"), true},
		{mustParse("pkg"), mustParse("pkg.M.design"), true},
		{mustParse("pkg"), mustParse("other.M"), false},
		{mustParse("pkg"), mustParse("pkg"), false},
		{mustParse("pkg.M"), mustParse("pkg.M.design"), true},
		{mustParse("pkg.M"), mustParse("pkg.M"), false},
		{mustParse("pkg.M"), mustParse("pkg.N.design"), false},
		{mustParse("pkg.M"), mustParse("other.M.design"), false},
		// Relative containment matches on metric alone.
		{Name{Metric: "M"}, Name{Metric: "M", Spec: "design"}, true},
		{Name{Metric: "M"}, mustParse("pkg.M.design"), true},
		// Specs contain nothing, not even themselves.
		{mustParse("pkg.M.design"), mustParse("pkg.M.design"), false},
		{mustParse("pkg.M.design"), mustParse("pkg.M"), false},
	}

	for _, tt := range tests {
		t.Run(tt.outer.String()+"_contains_"+tt.inner.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outer.Contains(tt.inner))
		})
	}
}

func TestNameAsMapKey(t *testing.T) {
	a, err := New("pkg", "M", "design")
	require.NoError(t, err)
	b, err := Parse("pkg.M.design")
	require.NoError(t, err)

	m := map[Name]int{a: 1}
	m[b]++
	assert.Len(t, m, 1)
	assert.Equal(t, 2, m[a])
}

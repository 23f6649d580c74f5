package measure

import (
	"github.com/google/uuid"

	"github.com/lsst/verify-sub000/naming"
	"github.com/lsst/verify-sub000/units"
)

// Measurement is one measured value of a metric.
type Measurement struct {
	// Metric names the measured metric.
	Metric naming.Name

	// Quantity is the measured value.
	Quantity units.Quantity

	// Notes carry free-form annotations from the measurement code.
	Notes map[string]string

	// BlobRefs lists identifiers of blobs this measurement links to.
	BlobRefs []string
}

// NewMeasurement builds a measurement of the named metric.
func NewMeasurement(metric naming.Name, q units.Quantity) *Measurement {
	return &Measurement{Metric: metric, Quantity: q}
}

// Link attaches a blob to the measurement.
func (m *Measurement) Link(b *Blob) {
	m.BlobRefs = append(m.BlobRefs, b.ID)
}

// Blob is a bundle of auxiliary data shared between measurements, for
// example the per-source residuals a repeatability metric was computed
// from. Blobs are identified by uuid so measurements can reference them
// across serialization boundaries.
type Blob struct {
	// ID is the blob's unique identifier.
	ID string

	// Name labels the blob's schema.
	Name string

	// Data holds the blob payload.
	Data units.DatumMap
}

// NewBlob creates a named blob with a fresh identifier.
func NewBlob(name string, data units.DatumMap) *Blob {
	return &Blob{
		ID:   uuid.New().String(),
		Name: name,
		Data: data,
	}
}

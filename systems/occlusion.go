package systems

// Occluder is an axis-aligned rectangle that blocks direct sun, such as a
// shelf or a neighboring pot.
type Occluder struct {
	X, Y          float32
	Width, Height float32
}

// Contains reports whether the point lies inside the occluder.
func (o Occluder) Contains(x, y float32) bool {
	return x >= o.X && x <= o.X+o.Width && y >= o.Y && y <= o.Y+o.Height
}

// OcclusionField answers point queries against a set of occluders.
// Plants under an occluder receive light scaled by the shade factor.
type OcclusionField struct {
	occluders   []Occluder
	shadeFactor float32
}

// NewOcclusionField creates an empty field with the given shade factor.
func NewOcclusionField(shadeFactor float32) *OcclusionField {
	return &OcclusionField{shadeFactor: clamp01(shadeFactor)}
}

// Add registers an occluder.
func (f *OcclusionField) Add(o Occluder) {
	f.occluders = append(f.occluders, o)
}

// Occluders returns the registered occluders.
func (f *OcclusionField) Occluders() []Occluder {
	return f.occluders
}

// SampleLight returns the light multiplier at a point: 1 in the open, the
// shade factor under any occluder.
func (f *OcclusionField) SampleLight(x, y float32) float32 {
	for _, o := range f.occluders {
		if o.Contains(x, y) {
			return f.shadeFactor
		}
	}
	return 1
}

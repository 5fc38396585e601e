package vision

// Params tunes tile localisation.
type Params struct {
	BlurSize        int     // Gaussian kernel size, odd
	BinaryThreshold float64 // gray level separating tile from background
	MinAspectRatio  float64 // width/height lower bound, inclusive
	MaxAspectRatio  float64 // width/height upper bound, inclusive
	MinAreaPixels   float64 // smaller boxes are treated as noise
}

// DefaultParams returns parameters tuned for white tiles with dark letters
// on a black table.
func DefaultParams() Params {
	return Params{
		BlurSize:        5,
		BinaryThreshold: 200,
		MinAspectRatio:  0.8,
		MaxAspectRatio:  1.2,
		MinAreaPixels:   100, // 10x10 px
	}
}

// WithAspectRange returns a copy of p with custom aspect ratio bounds.
func (p Params) WithAspectRange(lo, hi float64) Params {
	p.MinAspectRatio = lo
	p.MaxAspectRatio = hi
	return p
}

// WithThreshold returns a copy of p with a custom binary threshold.
func (p Params) WithThreshold(t float64) Params {
	p.BinaryThreshold = t
	return p
}

package ocr

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"snatchboard/pkg/geometry"
)

func TestParseGuess(t *testing.T) {
	tests := []struct {
		text  string
		valid bool
		want  rune
	}{
		{"A", true, 'A'},
		{" q\n", true, 'Q'},
		{"", false, 0},
		{"AB", false, 0},
		{"7", false, 0},
		{"É", false, 0},
	}
	for _, tt := range tests {
		g := parseGuess(tt.text, 90)
		assert.Equal(t, tt.valid, g.valid, "%q", tt.text)
		if tt.valid {
			assert.Equal(t, tt.want, g.letter)
			assert.Equal(t, 90.0, g.confidence)
		}
	}
}

func TestBestGuess(t *testing.T) {
	guesses := []guess{
		{letter: 'M', confidence: 60, valid: true},
		{},
		{letter: 'W', confidence: 88, valid: true},
		{letter: 'E', confidence: 88, valid: true},
	}

	best, ok := bestGuess(guesses, 50)
	assert.True(t, ok)
	assert.Equal(t, 'W', best.letter, "earlier guess wins a tie")

	_, ok = bestGuess(guesses, 88)
	assert.False(t, ok, "confidence must strictly exceed the threshold")

	_, ok = bestGuess([]guess{{}, {}, {}, {}}, 0)
	assert.False(t, ok)

	_, ok = bestGuess(nil, 0)
	assert.False(t, ok)
}

func TestScaleFactor(t *testing.T) {
	// A 0.5in tile spanning 75px is seen at 150 DPI; 300 DPI doubles it.
	assert.InDelta(t, 2.0, scaleFactor(75, 0.5, 300), 1e-9)
	assert.InDelta(t, 1.0, scaleFactor(0, 0.5, 300), 1e-9)
}

func TestCropBounds(t *testing.T) {
	r := geometry.NewRotatedRect(geometry.NewPoint2D(20, 20), geometry.NewSize(10, 10), 30)
	assert.Equal(t, image.Rect(15, 15, 25, 25), cropBounds(r, 100, 100))

	edge := geometry.NewRotatedRect(geometry.NewPoint2D(2, 98), geometry.NewSize(10, 10), 0)
	assert.Equal(t, image.Rect(0, 93, 7, 100), cropBounds(edge, 100, 100))

	outside := geometry.NewRotatedRect(geometry.NewPoint2D(-50, -50), geometry.NewSize(10, 10), 0)
	assert.True(t, cropBounds(outside, 100, 100).Empty())
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 300, opts.DPI)
	assert.Equal(t, 50.0, opts.ConfidenceThreshold)
	assert.Equal(t, "eng", opts.Language)
}

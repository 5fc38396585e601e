package ocr

import (
	"strings"
	"unicode/utf8"
)

// guess is one orientation's reading of a tile.
type guess struct {
	letter     rune
	confidence float64
	valid      bool
}

// parseGuess accepts text holding exactly one letter from TileChars.
func parseGuess(text string, confidence float64) guess {
	s := strings.ToUpper(strings.TrimSpace(text))
	if utf8.RuneCountInString(s) != 1 {
		return guess{}
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !strings.ContainsRune(TileChars, r) {
		return guess{}
	}
	return guess{letter: r, confidence: confidence, valid: true}
}

// bestGuess returns the valid guess with the highest confidence. Earlier
// guesses win ties. ok is false unless the winner strictly exceeds
// threshold.
func bestGuess(guesses []guess, threshold float64) (guess, bool) {
	var best guess
	for _, g := range guesses {
		if g.valid && (!best.valid || g.confidence > best.confidence) {
			best = g
		}
	}
	if !best.valid || !(best.confidence > threshold) {
		return guess{}, false
	}
	return best, true
}

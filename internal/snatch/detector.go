package snatch

import (
	"unicode/utf8"
)

// Detector finds snatchable words for a set of board words.
type Detector struct {
	index  *Index
	dedupe bool
}

// Option configures a Detector.
type Option func(*Detector)

// WithDeduplicate drops repeated results, keeping the first occurrence.
// By default every subset's matches are reported, so a word reachable from
// several subsets appears several times.
func WithDeduplicate(enabled bool) Option {
	return func(d *Detector) { d.dedupe = enabled }
}

// NewDetector creates a Detector over a built index.
func NewDetector(idx *Index, opts ...Option) *Detector {
	d := &Detector{index: idx}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Find returns every dictionary word formable from the letters of two or
// more of words. Each subset of at least two words is concatenated in list
// order, reduced to its anagram key and looked up; all words stored under a
// matching key are appended. Duplicate board words are distinct elements.
//
// Subsets are visited depth-first in lexicographic order of their word
// indices. A branch is abandoned once its letters outnumber the longest
// indexed word, since no extension of it can match. Worst case remains
// exponential in the number of short board words, but the search is bounded
// by the dictionary rather than by the board.
func (d *Detector) Find(words []string) []string {
	if len(words) < 2 || d.index == nil || d.index.MaxLen() == 0 {
		return nil
	}

	s := &search{
		index:  d.index,
		words:  words,
		sizes:  make([]int, len(words)),
		maxLen: d.index.MaxLen(),
	}
	for i, w := range words {
		s.sizes[i] = utf8.RuneCountInString(w)
	}
	s.extend(0, 0, 0, make([]byte, 0, 64))

	if d.dedupe {
		return Unique(s.result)
	}
	return s.result
}

// search holds the state of one Find call.
type search struct {
	index  *Index
	words  []string
	sizes  []int
	maxLen int
	result []string
}

// extend tries every word at index from or later as the next member of the
// subset whose concatenation is prefix.
func (s *search) extend(from, members, length int, prefix []byte) {
	for i := from; i < len(s.words); i++ {
		n := length + s.sizes[i]
		if n > s.maxLen {
			continue
		}

		next := append(prefix, s.words[i]...)
		if members >= 1 {
			s.result = append(s.result, s.index.Lookup(AnagramKey(string(next)))...)
		}
		s.extend(i+1, members+1, n, next)
	}
}

// Unique returns words without repeats, preserving first-occurrence order.
func Unique(words []string) []string {
	if len(words) == 0 {
		return words
	}
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

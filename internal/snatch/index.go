// Package snatch finds the dictionary words that can be formed by
// combining the letters of two or more words already on the board.
//
// An Index groups dictionary words by anagram key (upper-cased, sorted
// letters). It is built once at startup and is read-only afterwards, so one
// Index may be shared by any number of goroutines. A Detector queries the
// index with every multi-word combination of the board words.
package snatch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"
)

// MinWordLength is the shortest indexed dictionary word. A snatch combines
// at least two board words, so shorter targets are never reachable in play.
const MinWordLength = 3

// ErrDictionaryUnavailable indicates the dictionary source could not be
// opened or read. The detector cannot run without it.
var ErrDictionaryUnavailable = errors.New("snatch: dictionary unavailable")

// Index maps anagram keys to the dictionary words sharing them.
type Index struct {
	byKey  map[string][]string
	words  int
	maxLen int
}

// AnagramKey returns the canonical form of word: its letters upper-cased
// and sorted.
func AnagramKey(word string) string {
	rs := []rune(strings.ToUpper(word))
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return string(rs)
}

// NewIndex builds an index from words. Entries are trimmed and upper-cased;
// blank entries and words shorter than MinWordLength are skipped. Words
// keep their input order within a key.
func NewIndex(words []string) *Index {
	idx := &Index{byKey: make(map[string][]string)}
	for _, w := range words {
		idx.add(w)
	}
	return idx
}

// ReadIndex builds an index from a word list with one word per line.
func ReadIndex(r io.Reader) (*Index, error) {
	idx := &Index{byKey: make(map[string][]string)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		idx.add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read word list: %w", ErrDictionaryUnavailable, err)
	}
	return idx, nil
}

// LoadIndex builds an index from the word list file at path.
func LoadIndex(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", ErrDictionaryUnavailable, path, err)
	}
	defer f.Close()

	return ReadIndex(f)
}

func (idx *Index) add(word string) {
	w := strings.ToUpper(strings.TrimSpace(word))
	n := utf8.RuneCountInString(w)
	if n < MinWordLength {
		return
	}
	key := AnagramKey(w)
	idx.byKey[key] = append(idx.byKey[key], w)
	idx.words++
	idx.maxLen = max(idx.maxLen, n)
}

// Lookup returns the dictionary words whose anagram key is key, or nil.
// The returned slice must not be modified.
func (idx *Index) Lookup(key string) []string {
	return idx.byKey[key]
}

// Len returns the number of distinct anagram keys.
func (idx *Index) Len() int {
	return len(idx.byKey)
}

// Words returns the number of indexed dictionary words.
func (idx *Index) Words() int {
	return idx.words
}

// MaxLen returns the rune length of the longest indexed word, or 0 for an
// empty index.
func (idx *Index) MaxLen() int {
	return idx.maxLen
}

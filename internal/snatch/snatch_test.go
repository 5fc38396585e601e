package snatch_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snatchboard/internal/snatch"
)

var testDictionary = []string{"TIP", "PIT", "TAMPER", "MARE", "REAM", "CAT", "ACT"}

func TestAnagramKey(t *testing.T) {
	assert.Equal(t, "IPT", snatch.AnagramKey("tip"))
	assert.Equal(t, snatch.AnagramKey("PIT"), snatch.AnagramKey("TIP"))
	assert.Equal(t, "", snatch.AnagramKey(""))
	assert.Equal(t, "AEMPRT", snatch.AnagramKey("PETRAM"))
}

func TestNewIndex(t *testing.T) {
	idx := snatch.NewIndex([]string{"tip", " PIT ", "", "AT", "Q", "tamper"})

	assert.Equal(t, 3, idx.Words())
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, []string{"TIP", "PIT"}, idx.Lookup("IPT"))
	assert.Nil(t, idx.Lookup("AT"), "words shorter than three letters are not indexed")
}

func TestNewIndex_Rebuild(t *testing.T) {
	a := snatch.NewIndex(testDictionary)
	b := snatch.NewIndex(testDictionary)
	assert.Equal(t, a, b)
}

func TestReadIndex(t *testing.T) {
	idx, err := snatch.ReadIndex(strings.NewReader("CAT\r\nact\n\nXI\n   \nTAMPER\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, idx.Words())
	assert.Equal(t, []string{"CAT", "ACT"}, idx.Lookup("ACT"))
	assert.Equal(t, []string{"TAMPER"}, idx.Lookup("AEMPRT"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReadIndex_ReadError(t *testing.T) {
	_, err := snatch.ReadIndex(failingReader{})
	require.Error(t, err)
	assert.ErrorIs(t, err, snatch.ErrDictionaryUnavailable)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestLoadIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(testDictionary, "\n")), 0o644))

	idx, err := snatch.LoadIndex(path)
	require.NoError(t, err)
	assert.Equal(t, len(testDictionary), idx.Words())
}

func TestLoadIndex_Missing(t *testing.T) {
	_, err := snatch.LoadIndex(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, snatch.ErrDictionaryUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFind(t *testing.T) {
	d := snatch.NewDetector(snatch.NewIndex(testDictionary))

	tests := []struct {
		name  string
		words []string
		want  []string
	}{
		{"single letters", []string{"P", "I", "T"}, []string{"TIP", "PIT"}},
		{"two words forming an anagram pair", []string{"PI", "T"}, []string{"TIP", "PIT"}},
		{"no words", nil, nil},
		{"single word is never a snatch", []string{"TIP"}, nil},
		{"no dictionary match", []string{"O", "A", "N"}, nil},
		{"two words", []string{"PET", "RAM"}, []string{"TAMPER"}},
		{"three words", []string{"PET", "RAM", "E"}, []string{"TAMPER", "MARE", "REAM"}},
		{"lowercase board words", []string{"pet", "ram"}, []string{"TAMPER"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Find(tt.words))
		})
	}
}

func TestFind_SkipsSingleWordSubsets(t *testing.T) {
	// TIP is in the dictionary but needs two board words to be a snatch.
	d := snatch.NewDetector(snatch.NewIndex(testDictionary))
	assert.Empty(t, d.Find([]string{"TIP", "ZZ"}))
}

func TestFind_DuplicateResults(t *testing.T) {
	// {CA, T} and {AC, T} both form CAT/ACT.
	words := []string{"CA", "AC", "T"}

	d := snatch.NewDetector(snatch.NewIndex(testDictionary))
	assert.Equal(t, []string{"CAT", "ACT", "CAT", "ACT"}, d.Find(words))

	d = snatch.NewDetector(snatch.NewIndex(testDictionary), snatch.WithDeduplicate(true))
	assert.Equal(t, []string{"CAT", "ACT"}, d.Find(words))
}

func TestFind_LargeBoard(t *testing.T) {
	d := snatch.NewDetector(snatch.NewIndex([]string{"PIT", "TIP"}))

	words := []string{"P", "I", "T"}
	for i := 0; i < 40; i++ {
		words = append(words, "Q")
	}
	assert.Equal(t, []string{"PIT", "TIP"}, d.Find(words))
}

func TestFind_LargeBoardMatchesLateWords(t *testing.T) {
	d := snatch.NewDetector(snatch.NewIndex(testDictionary), snatch.WithDeduplicate(true))

	words := make([]string, 0, 32)
	for i := 0; i < 30; i++ {
		words = append(words, "ZZ")
	}
	words = append(words, "PET", "RAM")
	assert.Equal(t, []string{"TAMPER"}, d.Find(words))
}

func TestFind_EmptyIndex(t *testing.T) {
	d := snatch.NewDetector(snatch.NewIndex(nil))
	assert.Empty(t, d.Find([]string{"A", "B"}))
}

func TestIndex_MaxLen(t *testing.T) {
	assert.Equal(t, 0, snatch.NewIndex(nil).MaxLen())
	assert.Equal(t, 6, snatch.NewIndex(testDictionary).MaxLen())
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"B", "A", "C"}, snatch.Unique([]string{"B", "A", "B", "C", "A"}))
	assert.Empty(t, snatch.Unique(nil))
}

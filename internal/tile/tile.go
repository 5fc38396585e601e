// Package tile defines LetterTile, a recognized letter together with the
// oriented bounding box of the physical tile it was read from.
package tile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"

	"snatchboard/pkg/geometry"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrInvalidLetter indicates a letter outside the supported A-Z range.
	ErrInvalidLetter = errors.New("tile: letter must be an uppercase A-Z rune")

	// ErrInvalidGeometry indicates a negative, NaN or infinite rectangle field.
	ErrInvalidGeometry = errors.New("tile: invalid tile geometry")
)

// LetterTile is a recognized character plus its on-board footprint.
//
// Tiles are compared structurally with no tolerance: two tiles are equal
// only when the letter and the exact bit patterns of every geometric field
// match. Two reads of the same physical tile with sub-pixel jitter are
// therefore different tiles.
type LetterTile struct {
	Letter rune                 `json:"letter"`
	Rect   geometry.RotatedRect `json:"rect"`
}

// Key is the comparable identity of a LetterTile, usable as a map key.
// Float fields are stored as their IEEE-754 bits so that equality and
// hashing agree exactly (+0 and -0 are different keys, NaN equals itself).
type Key struct {
	Letter  rune
	CenterX uint64
	CenterY uint64
	Width   uint64
	Height  uint64
	Angle   uint64
}

// New creates a validated LetterTile. The angle is normalized into [-90, 90).
func New(letter rune, rect geometry.RotatedRect) (LetterTile, error) {
	if letter < 'A' || letter > 'Z' {
		return LetterTile{}, fmt.Errorf("%w: %q", ErrInvalidLetter, letter)
	}
	for _, f := range []float64{rect.Center.X, rect.Center.Y, rect.Size.Width, rect.Size.Height, rect.Angle} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return LetterTile{}, fmt.Errorf("%w: non-finite field in %+v", ErrInvalidGeometry, rect)
		}
	}
	if rect.Size.Width < 0 || rect.Size.Height < 0 {
		return LetterTile{}, fmt.Errorf("%w: negative size %vx%v", ErrInvalidGeometry, rect.Size.Width, rect.Size.Height)
	}

	rect.Angle = geometry.NormalizeAngle(rect.Angle)
	return LetterTile{Letter: letter, Rect: rect}, nil
}

// MustNew is like New but panics on invalid input. Intended for tests and
// literal fixtures.
func MustNew(letter rune, rect geometry.RotatedRect) LetterTile {
	t, err := New(letter, rect)
	if err != nil {
		panic(err)
	}
	return t
}

// Key returns the tile's identity.
func (t LetterTile) Key() Key {
	return Key{
		Letter:  t.Letter,
		CenterX: math.Float64bits(t.Rect.Center.X),
		CenterY: math.Float64bits(t.Rect.Center.Y),
		Width:   math.Float64bits(t.Rect.Size.Width),
		Height:  math.Float64bits(t.Rect.Size.Height),
		Angle:   math.Float64bits(t.Rect.Angle),
	}
}

// Equal reports whether two tiles are structurally identical.
func (t LetterTile) Equal(other LetterTile) bool {
	return t.Key() == other.Key()
}

// Hash returns a 64-bit hash of the letter and all geometric fields.
// Equal tiles always hash equal.
func (t LetterTile) Hash() uint64 {
	k := t.Key()
	var buf [44]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(k.Letter))
	binary.LittleEndian.PutUint64(buf[4:], k.CenterX)
	binary.LittleEndian.PutUint64(buf[12:], k.CenterY)
	binary.LittleEndian.PutUint64(buf[20:], k.Width)
	binary.LittleEndian.PutUint64(buf[28:], k.Height)
	binary.LittleEndian.PutUint64(buf[36:], k.Angle)
	return xxhash.Sum64(buf[:])
}

// Fingerprint returns a hash of the set of tiles, independent of their
// order. Repeated tiles count once, matching how a board graph collapses
// them. An empty set has fingerprint 0.
func Fingerprint(tiles []LetterTile) uint64 {
	if len(tiles) == 0 {
		return 0
	}
	hashes := make([]uint64, len(tiles))
	for i, t := range tiles {
		hashes[i] = t.Hash()
	}
	slices.Sort(hashes)
	hashes = slices.Compact(hashes)

	d := xxhash.New()
	var buf [8]byte
	for _, h := range hashes {
		binary.LittleEndian.PutUint64(buf[:], h)
		d.Write(buf[:])
	}
	return d.Sum64()
}

// Less orders tiles by key. It gives a canonical order to a pair of tiles.
func (k Key) Less(other Key) bool {
	switch {
	case k.Letter != other.Letter:
		return k.Letter < other.Letter
	case k.CenterX != other.CenterX:
		return k.CenterX < other.CenterX
	case k.CenterY != other.CenterY:
		return k.CenterY < other.CenterY
	case k.Width != other.Width:
		return k.Width < other.Width
	case k.Height != other.Height:
		return k.Height < other.Height
	default:
		return k.Angle < other.Angle
	}
}

// String renders the tile for logs.
func (t LetterTile) String() string {
	return fmt.Sprintf("%c@(%.1f,%.1f %.1fx%.1f %.1f°)",
		t.Letter, t.Rect.Center.X, t.Rect.Center.Y, t.Rect.Size.Width, t.Rect.Size.Height, t.Rect.Angle)
}

// Letters concatenates the letters of tiles in order.
func Letters(tiles []LetterTile) string {
	rs := make([]rune, len(tiles))
	for i, t := range tiles {
		rs[i] = t.Letter
	}
	return string(rs)
}

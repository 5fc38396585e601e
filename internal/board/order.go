package board

import (
	"math"
	"sort"

	"snatchboard/internal/tile"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Ordering arranges the tiles of one component before their letters are
// joined into a word. Implementations must not modify the input slice.
type Ordering func(comp []tile.LetterTile) []tile.LetterTile

// VisitOrder keeps the traversal order. The result reflects graph
// iteration, not the physical layout, so a word may come out scrambled.
func VisitOrder(comp []tile.LetterTile) []tile.LetterTile {
	return comp
}

// ReadingOrder sorts the tiles along the component's principal axis, read
// left to right, or top to bottom when the axis is closer to vertical.
// The axis is the dominant eigenvector of the covariance of tile centers.
func ReadingOrder(comp []tile.LetterTile) []tile.LetterTile {
	out := make([]tile.LetterTile, len(comp))
	copy(out, comp)
	if len(out) < 2 {
		return out
	}

	axisX, axisY := principalAxis(out)
	proj := func(t tile.LetterTile) float64 {
		return t.Rect.Center.X*axisX + t.Rect.Center.Y*axisY
	}
	sort.SliceStable(out, func(i, j int) bool {
		return proj(out[i]) < proj(out[j])
	})
	return out
}

// principalAxis returns a unit vector along the direction of greatest
// spread of the tile centers, pointing right (or down, for a vertical
// axis). It falls back to the X axis when the centers do not spread.
func principalAxis(tiles []tile.LetterTile) (float64, float64) {
	data := mat.NewDense(len(tiles), 2, nil)
	for i, t := range tiles {
		data.Set(i, 0, t.Rect.Center.X)
		data.Set(i, 1, t.Rect.Center.Y)
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, data, nil)

	var eig mat.EigenSym
	if !eig.Factorize(&cov, true) {
		return 1, 0
	}
	values := eig.Values(nil)
	if values[len(values)-1] <= 0 {
		return 1, 0
	}

	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	// Eigenvalues ascend, so the last column is the dominant axis.
	x, y := vecs.At(0, 1), vecs.At(1, 1)

	if math.Abs(x) >= math.Abs(y) {
		if x < 0 {
			x, y = -x, -y
		}
	} else if y < 0 {
		x, y = -x, -y
	}
	return x, y
}

package board

import (
	"snatchboard/internal/tile"
)

// walker holds depth-first traversal state over a Graph.
type walker struct {
	graph   *Graph
	visited map[tile.Key]bool
	comp    []tile.LetterTile
}

// Components partitions the graph into connected components by depth-first
// search. Start vertices are taken in the graph's vertex order and each
// component lists its tiles in visitation (pre-)order. An empty graph yields
// no components.
//
// Time:   O(V²) in the worst case, since neighbour sets are walked in
// vertex order; boards hold tens of tiles.
// Memory: O(V) for the visited set and recursion.
func Components(g *Graph) [][]tile.LetterTile {
	if g == nil || g.Len() == 0 {
		return nil
	}

	w := &walker{graph: g, visited: make(map[tile.Key]bool, g.Len())}
	var comps [][]tile.LetterTile
	for _, k := range g.order {
		if w.visited[k] {
			continue
		}
		w.comp = nil
		w.traverse(k)
		comps = append(comps, w.comp)
	}
	return comps
}

// traverse marks k visited, records it, then recurses into unvisited
// neighbours. Self-loops are skipped by the visited check.
func (w *walker) traverse(k tile.Key) {
	w.visited[k] = true
	w.comp = append(w.comp, w.graph.tiles[k])

	for _, nb := range w.graph.collect(w.graph.adj[k]) {
		nk := nb.Key()
		if !w.visited[nk] {
			w.traverse(nk)
		}
	}
}

// Words returns one board word per connected component. order rearranges
// the tiles of each component before their letters are concatenated; pass
// VisitOrder to keep traversal order.
func Words(g *Graph, order Ordering) []string {
	comps := Components(g)
	if order == nil {
		order = VisitOrder
	}

	words := make([]string, 0, len(comps))
	for _, comp := range comps {
		words = append(words, tile.Letters(order(comp)))
	}
	return words
}

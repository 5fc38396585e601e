// Package board groups recognized letter tiles into the words laid out on
// the table.
//
// Tiles become vertices of an undirected adjacency graph (Build); each
// connected component of that graph is one board word (Components, Words).
// Adjacency is decided by a caller-supplied predicate, by default the
// bounding-box strategy in adjacency.go.
//
// Graphs are built fresh for every frame and are not mutated afterwards.
// They are not safe for concurrent construction, but a built Graph may be
// read from several goroutines.
package board

import (
	"snatchboard/internal/tile"
)

// AdjacencyFunc reports whether two tiles are physically adjacent. It is
// expected to be symmetric; Build does not check this.
type AdjacencyFunc func(u, v tile.LetterTile) bool

// Graph is an undirected adjacency graph over letter tiles. Each vertex maps
// to the set of its neighbours, which includes the vertex itself whenever
// the predicate held for the reflexive pair.
type Graph struct {
	order []tile.Key                        // vertices in first-seen order
	tiles map[tile.Key]tile.LetterTile      // key -> tile
	adj   map[tile.Key]map[tile.Key]struct{} // key -> neighbour keys
}

// Build constructs the adjacency graph of tiles. For every ordered pair
// (u, v) of the input, including u == v, where adjacent(u, v) holds, v is
// added to u's neighbour set and u to v's. Every input tile is a vertex,
// even one the predicate does not relate to itself, so no recognized tile is
// lost. Tiles with identical keys collapse into a single vertex.
//
// Complexity: O(n²) predicate calls.
func Build(tiles []tile.LetterTile, adjacent AdjacencyFunc) *Graph {
	g := &Graph{
		tiles: make(map[tile.Key]tile.LetterTile, len(tiles)),
		adj:   make(map[tile.Key]map[tile.Key]struct{}, len(tiles)),
	}

	for _, t := range tiles {
		g.addVertex(t)
	}
	for _, u := range tiles {
		for _, v := range tiles {
			if adjacent(u, v) {
				g.link(u, v)
			}
		}
	}

	return g
}

// link records the undirected edge u–v, registering both vertices.
func (g *Graph) link(u, v tile.LetterTile) {
	uk, vk := g.addVertex(u), g.addVertex(v)
	g.adj[uk][vk] = struct{}{}
	g.adj[vk][uk] = struct{}{}
}

func (g *Graph) addVertex(t tile.LetterTile) tile.Key {
	k := t.Key()
	if _, ok := g.adj[k]; !ok {
		g.order = append(g.order, k)
		g.tiles[k] = t
		g.adj[k] = make(map[tile.Key]struct{})
	}
	return k
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.order)
}

// Tiles returns the vertices in the order they were first seen.
func (g *Graph) Tiles() []tile.LetterTile {
	out := make([]tile.LetterTile, len(g.order))
	for i, k := range g.order {
		out[i] = g.tiles[k]
	}
	return out
}

// Has reports whether t is a vertex of the graph.
func (g *Graph) Has(t tile.LetterTile) bool {
	_, ok := g.adj[t.Key()]
	return ok
}

// Adjacent reports whether v is in u's neighbour set.
func (g *Graph) Adjacent(u, v tile.LetterTile) bool {
	nbs, ok := g.adj[u.Key()]
	if !ok {
		return false
	}
	_, ok = nbs[v.Key()]
	return ok
}

// Neighbors returns u's neighbour set (possibly including u itself), in
// vertex order. It returns nil if u is not in the graph.
func (g *Graph) Neighbors(u tile.LetterTile) []tile.LetterTile {
	nbs, ok := g.adj[u.Key()]
	if !ok {
		return nil
	}
	return g.collect(nbs)
}

// collect returns the tiles of set in vertex order, so traversals do not
// depend on map iteration.
func (g *Graph) collect(set map[tile.Key]struct{}) []tile.LetterTile {
	out := make([]tile.LetterTile, 0, len(set))
	for _, k := range g.order {
		if _, ok := set[k]; ok {
			out = append(out, g.tiles[k])
		}
	}
	return out
}

package datastructure

import (
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
)

type Index uint32

const (
	INVALID_EDGE_ID   Index = math.MaxUint32
	INVALID_VERTEX_ID Index = math.MaxUint32
)

type Vertex struct {
	lat   float64
	lon   float64
	level Index // contraction order. higher = contracted later
	id    Index
}

func NewVertex(lat, lon float64, level, id Index) Vertex {
	return Vertex{
		lat:   lat,
		lon:   lon,
		level: level,
		id:    id,
	}
}

func (v Vertex) GetID() Index {
	return v.id
}

func (v Vertex) GetLat() float64 {
	return v.lat
}

func (v Vertex) GetLon() float64 {
	return v.lon
}

func (v Vertex) GetLevel() Index {
	return v.level
}

// Edge. original edge, or a shortcut standing in for exactly two consecutive edges (replaced).
type Edge struct {
	from     Index
	to       Index
	costs    CostVector
	replaced [2]Index
}

func NewEdge(from, to Index, costs CostVector) Edge {
	return Edge{
		from:     from,
		to:       to,
		costs:    costs,
		replaced: [2]Index{INVALID_EDGE_ID, INVALID_EDGE_ID},
	}
}

func NewShortcut(from, to Index, costs CostVector, replacedOne, replacedTwo Index) Edge {
	return Edge{
		from:     from,
		to:       to,
		costs:    costs,
		replaced: [2]Index{replacedOne, replacedTwo},
	}
}

func (e Edge) GetFrom() Index {
	return e.from
}

func (e Edge) GetTo() Index {
	return e.to
}

func (e Edge) GetCosts() CostVector {
	return e.costs
}

func (e Edge) GetReplacedEdges() (Index, Index) {
	return e.replaced[0], e.replaced[1]
}

func (e Edge) IsShortcut() bool {
	return e.replaced[0] != INVALID_EDGE_ID && e.replaced[1] != INVALID_EDGE_ID
}

// HalfEdge adjacency entry used during search expansion.
// for an incoming list, head is the tail of the stored edge.
type HalfEdge struct {
	head   Index
	edgeId Index
	costs  CostVector
}

func NewHalfEdge(head, edgeId Index, costs CostVector) HalfEdge {
	return HalfEdge{head: head, edgeId: edgeId, costs: costs}
}

func (he HalfEdge) GetHead() Index {
	return he.head
}

func (he HalfEdge) GetEdgeId() Index {
	return he.edgeId
}

func (he HalfEdge) GetCosts() CostVector {
	return he.costs
}

// Graph contracted graph. read-only once built, safe to share between concurrent queries.
type Graph struct {
	vertices []Vertex
	edges    []Edge

	// upward out-edges and downward in-edges, compressed: outEdges[firstOut[u]:firstOut[u+1]]
	outEdges []HalfEdge
	firstOut []Index
	inEdges  []HalfEdge
	firstIn  []Index

	unpackCache *lru.Cache[Index, []Index]

	// a shortcut of an acyclic replacement table nests at most this deep
	maxUnpackDepth int
}

// NewGraph builds the search adjacency from vertex levels: u->v is scanned by the forward search when
// level(u) <= level(v) and by the backward search (at v) when level(u) >= level(v).
// unpackCacheSize <= 0 disables memoization of shortcut expansions.
func NewGraph(vertices []Vertex, edges []Edge, unpackCacheSize int) (*Graph, error) {
	n := len(vertices)
	for eId, e := range edges {
		if int(e.from) >= n || int(e.to) >= n {
			return nil, fmt.Errorf("%w: edge %d (%d->%d) references vertex outside [0, %d)",
				ErrInvalidGraphFile, eId, e.from, e.to, n)
		}
		if err := e.costs.Validate(); err != nil {
			return nil, fmt.Errorf("edge %d: %w", eId, err)
		}
		if err := validateShortcut(edges, Index(eId)); err != nil {
			return nil, err
		}
	}

	g := &Graph{
		vertices: vertices,
		edges:    edges,
	}
	g.buildAdjacency()
	g.maxUnpackDepth = g.NumberOfShortcuts()

	if unpackCacheSize > 0 {
		cache, err := lru.New[Index, []Index](unpackCacheSize)
		if err != nil {
			return nil, err
		}
		g.unpackCache = cache
	}
	return g, nil
}

// validateShortcut a shortcut u->w must replace u->v and v->w, in either stored order.
func validateShortcut(edges []Edge, eId Index) error {
	e := edges[eId]
	if e.replaced[0] == INVALID_EDGE_ID && e.replaced[1] == INVALID_EDGE_ID {
		return nil
	}
	if !e.IsShortcut() {
		return fmt.Errorf("%w: edge %d has only one replaced edge", ErrUnpackInconsistent, eId)
	}
	a, b := e.replaced[0], e.replaced[1]
	if int(a) >= len(edges) || int(b) >= len(edges) || a == eId || b == eId {
		return fmt.Errorf("%w: shortcut %d replaces edges (%d, %d) outside the edge table",
			ErrUnpackInconsistent, eId, a, b)
	}
	first, second := edges[a], edges[b]
	if first.from != e.from {
		first, second = second, first
	}
	if first.from != e.from || first.to != second.from || second.to != e.to {
		return fmt.Errorf("%w: shortcut %d (%d->%d) does not match replaced edges %d and %d",
			ErrUnpackInconsistent, eId, e.from, e.to, a, b)
	}
	return nil
}

func (g *Graph) buildAdjacency() {
	n := len(g.vertices)
	outDegree := make([]Index, n+1)
	inDegree := make([]Index, n+1)
	for _, e := range g.edges {
		if g.isUpward(e) {
			outDegree[e.from+1]++
		}
		if g.isDownward(e) {
			inDegree[e.to+1]++
		}
	}
	for i := 1; i <= n; i++ {
		outDegree[i] += outDegree[i-1]
		inDegree[i] += inDegree[i-1]
	}
	g.firstOut = outDegree
	g.firstIn = inDegree
	g.outEdges = make([]HalfEdge, g.firstOut[n])
	g.inEdges = make([]HalfEdge, g.firstIn[n])

	outPos := make([]Index, n)
	inPos := make([]Index, n)
	copy(outPos, g.firstOut[:n])
	copy(inPos, g.firstIn[:n])
	for eId, e := range g.edges {
		if g.isUpward(e) {
			g.outEdges[outPos[e.from]] = NewHalfEdge(e.to, Index(eId), e.costs)
			outPos[e.from]++
		}
		if g.isDownward(e) {
			g.inEdges[inPos[e.to]] = NewHalfEdge(e.from, Index(eId), e.costs)
			inPos[e.to]++
		}
	}
}

func (g *Graph) isUpward(e Edge) bool {
	return g.vertices[e.from].level <= g.vertices[e.to].level
}

func (g *Graph) isDownward(e Edge) bool {
	return g.vertices[e.from].level >= g.vertices[e.to].level
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) NumberOfShortcuts() int {
	count := 0
	for _, e := range g.edges {
		if e.IsShortcut() {
			count++
		}
	}
	return count
}

func (g *Graph) GetVertex(u Index) Vertex {
	return g.vertices[u]
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	return g.vertices[u].lat, g.vertices[u].lon
}

func (g *Graph) GetEdge(eId Index) Edge {
	return g.edges[eId]
}

// GetOutEdges outgoing shortcut-graph edges of u, scanned by the forward search.
func (g *Graph) GetOutEdges(u Index) []HalfEdge {
	return g.outEdges[g.firstOut[u]:g.firstOut[u+1]]
}

// GetInEdges incoming shortcut-graph edges of u, walked in reverse by the backward search.
func (g *Graph) GetInEdges(u Index) []HalfEdge {
	return g.inEdges[g.firstIn[u]:g.firstIn[u+1]]
}

// OriginalAdjacency out- and in-edges of every vertex over original edges only, shortcuts skipped.
// the in-edge half edges carry the tail as head.
func (g *Graph) OriginalAdjacency() ([][]HalfEdge, [][]HalfEdge) {
	n := len(g.vertices)
	out := make([][]HalfEdge, n)
	in := make([][]HalfEdge, n)
	for eId, e := range g.edges {
		if e.IsShortcut() {
			continue
		}
		out[e.from] = append(out[e.from], NewHalfEdge(e.to, Index(eId), e.costs))
		in[e.to] = append(in[e.to], NewHalfEdge(e.from, Index(eId), e.costs))
	}
	return out, in
}

func (g *Graph) ForVertices(handle func(v Vertex)) {
	for _, v := range g.vertices {
		handle(v)
	}
}

// PathCosts sum of the stored cost vectors of edgeIds.
func (g *Graph) PathCosts(edgeIds []Index) CostVector {
	var total CostVector
	for _, eId := range edgeIds {
		total = AddCosts(total, g.edges[eId].costs)
	}
	return total
}

// PathVertices vertex sequence visited by edgeIds starting from source.
func (g *Graph) PathVertices(edgeIds []Index, source Index) []Index {
	vertices := make([]Index, 0, len(edgeIds)+1)
	vertices = append(vertices, source)
	for _, eId := range edgeIds {
		vertices = append(vertices, g.edges[eId].to)
	}
	return vertices
}

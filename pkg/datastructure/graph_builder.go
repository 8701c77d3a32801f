package datastructure

import "fmt"

// GraphBuilder assembles a contracted graph in memory. shortcuts are derived from the two edges they replace.
type GraphBuilder struct {
	vertices []Vertex
	edges    []Edge
	err      error
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		vertices: make([]Vertex, 0),
		edges:    make([]Edge, 0),
	}
}

func (gb *GraphBuilder) AddVertex(lat, lon float64, level Index) Index {
	id := Index(len(gb.vertices))
	gb.vertices = append(gb.vertices, NewVertex(lat, lon, level, id))
	return id
}

func (gb *GraphBuilder) AddEdge(from, to Index, costs CostVector) Index {
	id := Index(len(gb.edges))
	gb.edges = append(gb.edges, NewEdge(from, to, costs))
	return id
}

// AddShortcut adds a shortcut over the consecutive edges first and second, whose costs it sums.
// the stored replaced order is (first, second) unless swapped is set.
func (gb *GraphBuilder) AddShortcut(first, second Index, swapped bool) Index {
	if int(first) >= len(gb.edges) || int(second) >= len(gb.edges) {
		gb.setErr(fmt.Errorf("%w: shortcut over unknown edges %d, %d", ErrUnpackInconsistent, first, second))
		return INVALID_EDGE_ID
	}
	a, b := gb.edges[first], gb.edges[second]
	if a.to != b.from {
		gb.setErr(fmt.Errorf("%w: edges %d and %d are not consecutive", ErrUnpackInconsistent, first, second))
		return INVALID_EDGE_ID
	}
	id := Index(len(gb.edges))
	one, two := first, second
	if swapped {
		one, two = second, first
	}
	gb.edges = append(gb.edges, NewShortcut(a.from, b.to, AddCosts(a.costs, b.costs), one, two))
	return id
}

func (gb *GraphBuilder) setErr(err error) {
	if gb.err == nil {
		gb.err = err
	}
}

func (gb *GraphBuilder) Build(unpackCacheSize int) (*Graph, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	return NewGraph(gb.vertices, gb.edges, unpackCacheSize)
}

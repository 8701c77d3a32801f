package datastructure

import "fmt"

// UnpackPath replaces every shortcut in edgeIds with the original edges it stands for, in travel order.
// source is the first vertex of the path: walking from it tells which of a shortcut's two replaced edges
// comes first, whichever order they were stored in.
func (g *Graph) UnpackPath(edgeIds []Index, source Index) ([]Index, error) {
	if int(source) >= len(g.vertices) {
		return nil, fmt.Errorf("%w: source vertex %d out of range", ErrUnpackInconsistent, source)
	}
	path := make([]Index, 0, len(edgeIds))
	curr := source
	for _, eId := range edgeIds {
		unpacked, err := g.unpackEdge(eId, curr)
		if err != nil {
			return nil, err
		}
		path = append(path, unpacked...)
		curr = g.edges[eId].to
	}
	return path, nil
}

type unpackItem struct {
	edge  Index
	from  Index
	depth int
}

// unpackEdge expands one edge leaving from. explicit stack instead of recursion; the right half is pushed
// first so the left half is expanded first.
func (g *Graph) unpackEdge(eId, from Index) ([]Index, error) {
	if int(eId) >= len(g.edges) {
		return nil, fmt.Errorf("%w: edge %d outside the edge table", ErrUnpackInconsistent, eId)
	}
	if g.edges[eId].from != from {
		return nil, fmt.Errorf("%w: edge %d does not leave vertex %d", ErrUnpackInconsistent, eId, from)
	}
	if !g.edges[eId].IsShortcut() {
		return []Index{eId}, nil
	}

	if g.unpackCache != nil {
		if cached, ok := g.unpackCache.Get(eId); ok {
			return cached, nil
		}
	}

	result := make([]Index, 0, 4)
	stack := []unpackItem{{edge: eId, from: from, depth: 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// deeper than the number of shortcuts means some shortcut replaces itself
		if it.depth > g.maxUnpackDepth {
			return nil, fmt.Errorf("%w: unpacking shortcut %d exceeds depth %d, cyclic replacement",
				ErrUnpackInconsistent, eId, g.maxUnpackDepth)
		}
		if int(it.edge) >= len(g.edges) {
			return nil, fmt.Errorf("%w: edge %d outside the edge table", ErrUnpackInconsistent, it.edge)
		}

		e := g.edges[it.edge]
		if e.from != it.from {
			return nil, fmt.Errorf("%w: edge %d does not leave vertex %d", ErrUnpackInconsistent, it.edge, it.from)
		}
		if !e.IsShortcut() {
			result = append(result, it.edge)
			continue
		}

		first, second := e.replaced[0], e.replaced[1]
		if int(first) >= len(g.edges) || int(second) >= len(g.edges) {
			return nil, fmt.Errorf("%w: shortcut %d replaces edges outside the edge table",
				ErrUnpackInconsistent, it.edge)
		}
		if g.edges[first].from != it.from {
			first, second = second, first
		}

		stack = append(stack, unpackItem{edge: second, from: g.edges[first].to, depth: it.depth + 1})
		stack = append(stack, unpackItem{edge: first, from: it.from, depth: it.depth + 1})
	}

	if g.unpackCache != nil {
		g.unpackCache.Add(eId, result)
	}
	return result, nil
}

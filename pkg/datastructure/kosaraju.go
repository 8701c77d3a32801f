package datastructure

// RunKosaraju. runs kosaraju's algorithm on the original (non-shortcut) edges and returns the strongly connected
// component id of every vertex. component ids are assigned in topological order of the condensation.
func (g *Graph) RunKosaraju() []Index {
	n := g.NumberOfVertices()
	fwd, bwd := g.OriginalAdjacency()

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for v := 0; v < n; v++ {
		if !visited[v] {
			order = dfsPostOrder(Index(v), fwd, visited, order)
		}
	}

	sccs := make([]Index, n)
	for i := range sccs {
		sccs[i] = INVALID_VERTEX_ID
	}
	visited = make([]bool, n)
	component := make([]Index, 0, 16)
	comp := Index(0)
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		if visited[v] {
			continue
		}
		component = dfsPostOrder(v, bwd, visited, component[:0])
		for _, u := range component {
			sccs[u] = comp
		}
		comp++
	}
	return sccs
}

// LargestComponent vertices of the biggest strongly connected component, in increasing id order.
func LargestComponent(sccs []Index) []Index {
	sizes := make(map[Index]int)
	var best Index
	for _, c := range sccs {
		sizes[c]++
		if sizes[c] > sizes[best] || (sizes[c] == sizes[best] && c < best) {
			best = c
		}
	}

	vertices := make([]Index, 0, sizes[best])
	for v, c := range sccs {
		if c == best {
			vertices = append(vertices, Index(v))
		}
	}
	return vertices
}

type dfsFrame struct {
	v    Index
	next int
}

// dfsPostOrder iterative dfs from s, appends vertices to output in post-order.
func dfsPostOrder(s Index, adj [][]HalfEdge, visited []bool, output []Index) []Index {
	visited[s] = true
	stack := []dfsFrame{{v: s}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(adj[top.v]) {
			w := adj[top.v][top.next].GetHead()
			top.next++
			if !visited[w] {
				visited[w] = true
				stack = append(stack, dfsFrame{v: w})
			}
			continue
		}
		output = append(output, top.v)
		stack = stack[:len(stack)-1]
	}
	return output
}

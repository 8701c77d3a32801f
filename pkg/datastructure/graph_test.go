package datastructure

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nan() float64 { return math.NaN() }
func inf() float64 { return math.Inf(1) }

/*
0 -> 1 -> 2 -> 3 with levels 3, 0, 1, 2.
shortcut 4 = (0->1, 1->2), shortcut 5 = (4, 2->3) stored reversed.
*/
func buildChain(t *testing.T, cacheSize int) *Graph {
	gb := NewGraphBuilder()
	gb.AddVertex(-7.75, 110.37, 3)
	gb.AddVertex(-7.76, 110.38, 0)
	gb.AddVertex(-7.77, 110.39, 1)
	gb.AddVertex(-7.78, 110.40, 2)
	e01 := gb.AddEdge(0, 1, NewCostVector(1, 2, 0))
	e12 := gb.AddEdge(1, 2, NewCostVector(3, 0, 1))
	e23 := gb.AddEdge(2, 3, NewCostVector(5, 1, 0))
	s02 := gb.AddShortcut(e01, e12, false)
	gb.AddShortcut(s02, e23, true)
	g, err := gb.Build(cacheSize)
	require.NoError(t, err)
	return g
}

func TestGraphAdjacencyFollowsLevels(t *testing.T) {
	g := buildChain(t, 0)

	require.Equal(t, 4, g.NumberOfVertices())
	require.Equal(t, 5, g.NumberOfEdges())
	assert.Equal(t, 2, g.NumberOfShortcuts())

	headsAndIds := func(hs []HalfEdge) [][2]Index {
		out := make([][2]Index, 0, len(hs))
		for _, h := range hs {
			out = append(out, [2]Index{h.GetHead(), h.GetEdgeId()})
		}
		return out
	}

	// vertex 0 is the highest, every edge leaving it goes down
	assert.Empty(t, g.GetOutEdges(0))
	assert.Equal(t, [][2]Index{{0, 0}}, headsAndIds(g.GetInEdges(1)))
	assert.Equal(t, [][2]Index{{2, 1}}, headsAndIds(g.GetOutEdges(1)))
	assert.Equal(t, [][2]Index{{3, 2}}, headsAndIds(g.GetOutEdges(2)))
	assert.Equal(t, [][2]Index{{0, 3}}, headsAndIds(g.GetInEdges(2)))
	assert.Equal(t, [][2]Index{{0, 4}}, headsAndIds(g.GetInEdges(3)))

	assert.Equal(t, NewCostVector(9, 3, 1), g.GetEdge(4).GetCosts())
}

func TestUnpackPath(t *testing.T) {
	for _, cacheSize := range []int{0, 8} {
		g := buildChain(t, cacheSize)

		testCases := []struct {
			name   string
			path   []Index
			source Index
			want   []Index
		}{
			{name: "original edges", path: []Index{0, 1, 2}, source: 0, want: []Index{0, 1, 2}},
			{name: "one level shortcut", path: []Index{3, 2}, source: 0, want: []Index{0, 1, 2}},
			{name: "nested reversed shortcut", path: []Index{4}, source: 0, want: []Index{0, 1, 2}},
			{name: "suffix", path: []Index{1, 2}, source: 1, want: []Index{1, 2}},
			{name: "empty", path: []Index{}, source: 2, want: []Index{}},
		}

		for _, tt := range testCases {
			t.Run(tt.name, func(t *testing.T) {
				// twice, the second one may come from the cache
				for i := 0; i < 2; i++ {
					got, err := g.UnpackPath(tt.path, tt.source)
					require.NoError(t, err)
					assert.Equal(t, tt.want, got)
				}
			})
		}
	}
}

func TestUnpackPathInconsistent(t *testing.T) {
	g := buildChain(t, 0)

	testCases := []struct {
		name   string
		path   []Index
		source Index
	}{
		{name: "edge does not leave source", path: []Index{1}, source: 0},
		{name: "gap between edges", path: []Index{0, 2}, source: 0},
		{name: "edge out of range", path: []Index{17}, source: 0},
		{name: "source out of range", path: []Index{0}, source: 9},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.UnpackPath(tt.path, tt.source)
			assert.ErrorIs(t, err, ErrUnpackInconsistent)
		})
	}
}

func TestUnpackPathCyclicReplacement(t *testing.T) {
	vertices := []Vertex{NewVertex(0, 0, 0, 0), NewVertex(0, 0, 0, 1), NewVertex(0, 0, 0, 2)}
	edges := []Edge{
		NewShortcut(0, 2, NewCostVector(1), 1, 3),
		NewShortcut(0, 1, NewCostVector(1), 0, 2),
		NewEdge(2, 1, NewCostVector(1)),
		NewEdge(1, 2, NewCostVector(1)),
	}
	g, err := NewGraph(vertices, edges, 0)
	require.NoError(t, err)

	_, err = g.UnpackPath([]Index{0}, 0)
	assert.ErrorIs(t, err, ErrUnpackInconsistent)
}

/*
0 -> 1 -> ... -> n with the interior vertices contracted left to right. every shortcut 0->k+1 replaces the
previous shortcut 0->k and k->k+1, so the last one nests n-1 levels deep.
*/
func buildDeepChain(t *testing.T, n, cacheSize int) (*Graph, Index) {
	gb := NewGraphBuilder()
	gb.AddVertex(0, 0, Index(n-1))
	for i := 1; i < n; i++ {
		gb.AddVertex(0, float64(i)*0.001, Index(i-1))
	}
	gb.AddVertex(0, float64(n)*0.001, Index(n))

	edges := make([]Index, n)
	for i := 0; i < n; i++ {
		edges[i] = gb.AddEdge(Index(i), Index(i+1), NewCostVector(1, float64(i), 0))
	}
	last := edges[0]
	for i := 1; i < n; i++ {
		last = gb.AddShortcut(last, edges[i], i%2 == 0)
	}
	g, err := gb.Build(cacheSize)
	require.NoError(t, err)
	return g, last
}

func TestUnpackPathDeepShortcutChain(t *testing.T) {
	n := 150
	for _, cacheSize := range []int{0, 8} {
		g, top := buildDeepChain(t, n, cacheSize)
		require.Equal(t, n-1, g.NumberOfShortcuts())

		wantEdges := make([]Index, n)
		wantVertices := make([]Index, n+1)
		for i := 0; i <= n; i++ {
			if i < n {
				wantEdges[i] = Index(i)
			}
			wantVertices[i] = Index(i)
		}

		for i := 0; i < 2; i++ {
			unpacked, err := g.UnpackPath([]Index{top}, 0)
			require.NoError(t, err)
			assert.Equal(t, wantEdges, unpacked)
			assert.Equal(t, wantVertices, g.PathVertices(unpacked, 0))
			assert.Equal(t, g.GetEdge(top).GetCosts(), g.PathCosts(unpacked))
		}
	}
}

func TestNewGraphRejectsInvalidInput(t *testing.T) {
	vertices := []Vertex{NewVertex(0, 0, 0, 0), NewVertex(0, 0, 0, 1), NewVertex(0, 0, 0, 2)}

	testCases := []struct {
		name    string
		edges   []Edge
		wantErr error
	}{
		{
			name:    "vertex out of range",
			edges:   []Edge{NewEdge(0, 5, NewCostVector(1))},
			wantErr: ErrInvalidGraphFile,
		},
		{
			name:    "negative cost",
			edges:   []Edge{NewEdge(0, 1, NewCostVector(1, -2))},
			wantErr: ErrInvalidCostInput,
		},
		{
			name:    "nan cost",
			edges:   []Edge{NewEdge(0, 1, NewCostVector(nan()))},
			wantErr: ErrInvalidCostInput,
		},
		{
			name: "single replaced edge",
			edges: []Edge{
				NewEdge(0, 1, NewCostVector(1)),
				NewShortcut(0, 1, NewCostVector(1), 0, INVALID_EDGE_ID),
			},
			wantErr: ErrUnpackInconsistent,
		},
		{
			name: "replaced edge outside table",
			edges: []Edge{
				NewEdge(0, 1, NewCostVector(1)),
				NewShortcut(0, 2, NewCostVector(1), 0, 9),
			},
			wantErr: ErrUnpackInconsistent,
		},
		{
			name: "replaced edges not consecutive",
			edges: []Edge{
				NewEdge(0, 1, NewCostVector(1)),
				NewEdge(0, 2, NewCostVector(1)),
				NewShortcut(0, 2, NewCostVector(2), 0, 1),
			},
			wantErr: ErrUnpackInconsistent,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraph(vertices, tt.edges, 0)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGraphBuilderRejectsNonConsecutiveShortcut(t *testing.T) {
	gb := NewGraphBuilder()
	gb.AddVertex(0, 0, 0)
	gb.AddVertex(0, 0, 0)
	gb.AddVertex(0, 0, 0)
	a := gb.AddEdge(0, 1, NewCostVector(1))
	b := gb.AddEdge(0, 2, NewCostVector(1))
	assert.Equal(t, INVALID_EDGE_ID, gb.AddShortcut(a, b, false))

	_, err := gb.Build(0)
	assert.ErrorIs(t, err, ErrUnpackInconsistent)
}

func TestPathCostsAndVertices(t *testing.T) {
	g := buildChain(t, 0)

	assert.Equal(t, NewCostVector(9, 3, 1), g.PathCosts([]Index{0, 1, 2}))
	assert.Equal(t, []Index{0, 1, 2, 3}, g.PathVertices([]Index{0, 1, 2}, 0))
}

func TestGraphFileRoundTrip(t *testing.T) {
	g := buildChain(t, 0)
	filename := filepath.Join(t.TempDir(), "chain.graph")

	require.NoError(t, g.WriteGraph(filename))

	read, err := ReadGraph(filename, 8)
	require.NoError(t, err)

	require.Equal(t, g.NumberOfVertices(), read.NumberOfVertices())
	require.Equal(t, g.NumberOfEdges(), read.NumberOfEdges())
	for v := Index(0); v < Index(g.NumberOfVertices()); v++ {
		assert.Equal(t, g.GetVertex(v), read.GetVertex(v))
		assert.Equal(t, g.GetOutEdges(v), read.GetOutEdges(v))
		assert.Equal(t, g.GetInEdges(v), read.GetInEdges(v))
	}
	for e := Index(0); e < Index(g.NumberOfEdges()); e++ {
		assert.Equal(t, g.GetEdge(e), read.GetEdge(e))
	}

	unpacked, err := read.UnpackPath([]Index{4}, 0)
	require.NoError(t, err)
	assert.Equal(t, []Index{0, 1, 2}, unpacked)
}

func TestReadGraphInvalidFile(t *testing.T) {
	_, err := ReadGraph(filepath.Join(t.TempDir(), "missing.graph"), 0)
	assert.Error(t, err)

	notBzip := filepath.Join(t.TempDir(), "plain.graph")
	require.NoError(t, os.WriteFile(notBzip, []byte("1 0\n0 0 0\n"), 0644))
	_, err = ReadGraph(notBzip, 0)
	assert.Error(t, err)
}

func writeBzip2(t *testing.T, filename, content string) {
	f, err := os.Create(filename)
	require.NoError(t, err)
	defer f.Close()
	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, bz.Close())
}

func TestReadGraphCorruptContent(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "huge header counts", content: "4294967295 4294967295\n0 0 0\n"},
		{name: "missing edges", content: "2 3\n0 0 0\n0 0 1\n0 1 1 0 0 -1 -1\n"},
		{name: "header not a number", content: "two 1\n"},
		{name: "too many vertex fields", content: "1 0\n0 0 0 0\n"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			filename := filepath.Join(t.TempDir(), "corrupt.graph")
			writeBzip2(t, filename, tt.content)

			_, err := ReadGraph(filename, 0)
			assert.ErrorIs(t, err, ErrInvalidGraphFile)
		})
	}
}

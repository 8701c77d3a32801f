package routing

import (
	"math"
	"math/rand"
	"testing"

	da "github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDijkstraTriangle(t *testing.T) {
	g := buildTriangle(t)
	dijkstra := NewDijkstra(g)
	require.NoError(t, dijkstra.ShortestPath(0, distanceOnly()))

	assert.Equal(t, 0.0, dijkstra.GetTotalCost(0))
	assert.Equal(t, 3.0, dijkstra.GetTotalCost(1))
	assert.Equal(t, 7.0, dijkstra.GetTotalCost(2))
	assert.Equal(t, []da.Index{0, 1}, dijkstra.PathTo(2))
	assert.Equal(t, da.NewCostVector(7), dijkstra.GetCosts(2))
	assert.Empty(t, dijkstra.PathTo(0))
	assert.Equal(t, 3, dijkstra.GetNumSettledNodes())

	require.NoError(t, dijkstra.ShortestPath(2, distanceOnly()))
	assert.False(t, dijkstra.Reached(0))
	assert.Nil(t, dijkstra.PathTo(0))
}

func TestDijkstraInvalidInput(t *testing.T) {
	dijkstra := NewDijkstra(buildTriangle(t))
	assert.ErrorIs(t, dijkstra.ShortestPath(3, distanceOnly()), ErrInvalidNodeId)
	assert.ErrorIs(t, dijkstra.ShortestPath(0, da.NewPreference(-1, 0, 0)), da.ErrInvalidCostInput)
}

func TestDijkstraIgnoresShortcuts(t *testing.T) {
	rd := rand.New(rand.NewSource(11))
	n := 20
	edges := randomEdges(rd, n, 60)
	alpha := da.NewPreference(1, 2, 0.5)
	g := contractAll(t, rand.New(rand.NewSource(3)), n, edges, alpha)

	dijkstra := NewDijkstra(g)
	for s := da.Index(0); s < da.Index(n); s++ {
		require.NoError(t, dijkstra.ShortestPath(s, alpha))
		for tg := da.Index(0); tg < da.Index(n); tg++ {
			want := referenceDijkstra(n, edges, s, tg, alpha)
			if math.IsInf(want, 1) {
				assert.False(t, dijkstra.Reached(tg), "s=%d t=%d", s, tg)
				continue
			}
			require.True(t, dijkstra.Reached(tg), "s=%d t=%d", s, tg)
			assert.InDelta(t, want, dijkstra.GetTotalCost(tg), 1e-9)

			path := dijkstra.PathTo(tg)
			for _, eId := range path {
				assert.False(t, g.GetEdge(eId).IsShortcut())
			}
			assert.Equal(t, dijkstra.GetCosts(tg), g.PathCosts(path))
		}
	}
}

package engine

import (
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewEngine(t *testing.T) {
	gb := datastructure.NewGraphBuilder()
	gb.AddVertex(-7.75, 110.37, 0)
	gb.AddVertex(-7.76, 110.38, 2)
	gb.AddVertex(-7.77, 110.39, 1)
	a := gb.AddEdge(0, 1, datastructure.NewCostVector(2, 1, 0))
	b := gb.AddEdge(1, 2, datastructure.NewCostVector(3, 0, 0))
	gb.AddEdge(0, 2, datastructure.NewCostVector(10, 0, 0))
	gb.AddShortcut(a, b, false)
	g, err := gb.Build(0)
	require.NoError(t, err)

	filename := filepath.Join(t.TempDir(), "small.graph")
	require.NoError(t, g.WriteGraph(filename))

	e, err := NewEngine(filename, 16, true, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, e.GetGraph().NumberOfVertices())
	assert.Equal(t, 1, e.GetGraph().NumberOfShortcuts())

	sp, found, err := e.GetRoutingEngine().ShortestPath(0, 2, datastructure.NewPreference(1, 0, 0))
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 5.0, sp.GetTotalCost(), datastructure.EPS)
	assert.Equal(t, []datastructure.Index{0, 1}, sp.GetEdges())
}

func TestNewEngineMissingGraph(t *testing.T) {
	_, err := NewEngine(filepath.Join(t.TempDir(), "missing.graph"), 0, false, zap.NewNop())
	assert.Error(t, err)
}

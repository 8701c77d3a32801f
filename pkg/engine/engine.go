package engine

import (
	"github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/lintang-b-s/prefroute/pkg/engine/routing"
	"go.uber.org/zap"
)

type Engine struct {
	graph         *datastructure.Graph
	routingEngine *routing.RoutingEngine
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.routingEngine
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.graph
}

// NewEngine reads the contracted graph and sets up the query engine on top of it.
// unpackCacheSize <= 0 turns off the shortcut expansion cache.
func NewEngine(graphFilePath string, unpackCacheSize int, stoppingCriterion bool, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting query engine of preference-based contraction hierarchies...")

	logger.Info("Reading graph from ", zap.String("graphFilePath", graphFilePath))
	graph, err := datastructure.ReadGraph(graphFilePath, unpackCacheSize)
	if err != nil {
		return nil, err
	}
	logger.Info("Graph loaded", zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()), zap.Int("shortcuts", graph.NumberOfShortcuts()),
		zap.Int("unpackCacheSize", unpackCacheSize), zap.Bool("stoppingCriterion", stoppingCriterion))

	return &Engine{
		graph:         graph,
		routingEngine: routing.NewRoutingEngine(graph, logger, stoppingCriterion),
	}, nil
}

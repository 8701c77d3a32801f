package routing

import (
	"time"

	da "github.com/lintang-b-s/prefroute/pkg/datastructure"
	"go.uber.org/zap"
)

type RoutingEngine struct {
	graph             *da.Graph
	logger            *zap.Logger
	stoppingCriterion bool
}

func NewRoutingEngine(graph *da.Graph, logger *zap.Logger, stoppingCriterion bool) *RoutingEngine {
	return &RoutingEngine{
		graph:             graph,
		logger:            logger,
		stoppingCriterion: stoppingCriterion,
	}
}

func (re *RoutingEngine) GetGraph() *da.Graph {
	return re.graph
}

// ShortestPath runs one query on its own search state, so it may be called from many goroutines at once.
func (re *RoutingEngine) ShortestPath(s, t da.Index, alpha da.Preference) (*ShortestPath, bool, error) {
	start := time.Now()
	bs := NewBidirectionalSearch(re.graph, WithStoppingCriterion(re.stoppingCriterion))
	sp, found, err := bs.ShortestPathSearch(s, t, alpha)
	if err != nil {
		re.logger.Debug("shortest path query failed", zap.Uint32("source", uint32(s)),
			zap.Uint32("target", uint32(t)), zap.Error(err))
		return nil, false, err
	}

	stats := bs.GetStats()
	fields := []zap.Field{
		zap.Uint32("source", uint32(s)),
		zap.Uint32("target", uint32(t)),
		zap.Bool("found", found),
		zap.Int("settled", stats.SettledStates),
		zap.Int("stale", stats.StaleStates),
		zap.Int("relaxed", stats.RelaxedEdges),
		zap.Duration("took", time.Since(start)),
	}
	if found {
		fields = append(fields, zap.Float64("cost", sp.GetTotalCost()), zap.Int("edges", len(sp.GetEdges())))
	}
	re.logger.Debug("shortest path query", fields...)
	return sp, found, nil
}

package routing

import (
	"fmt"

	da "github.com/lintang-b-s/prefroute/pkg/datastructure"
)

type SearchOption func(bs *BidirectionalSearch)

// WithStoppingCriterion stop once the smallest queued cost is no better than the best meeting cost.
// results are unchanged; it only skips states that cannot improve the answer.
func WithStoppingCriterion(enabled bool) SearchOption {
	return func(bs *BidirectionalSearch) {
		bs.stoppingCriterion = enabled
	}
}

// BidirectionalSearch one query of the bidirectional multi-criteria dijkstra on the contracted graph.
// holds per-query state only, so it is not reusable across goroutines. create one per query.
type BidirectionalSearch struct {
	graph             Graph
	stoppingCriterion bool

	source, target da.Index

	forwardInfo  []VertexInfo
	backwardInfo []VertexInfo

	// shared by both directions
	pq *da.MinHeap[SearchState]

	best  meetingVertex
	stats SearchStats
}

func NewBidirectionalSearch(graph Graph, opts ...SearchOption) *BidirectionalSearch {
	bs := &BidirectionalSearch{
		graph: graph,
		pq:    da.NewFourAryHeap[SearchState](),
	}
	for _, opt := range opts {
		opt(bs)
	}
	return bs
}

/*
ShortestPathSearch. least-cost path from s to t under the scalarization Scalarize(costs, alpha).

a forward search from s over out-edges and a backward search from t over reversed in-edges share one
priority queue. every popped state is merged with the opposite direction's label of the same vertex; the
best merge is the meeting vertex. the loop runs until the queue is empty (unless the stopping criterion is
enabled). returns found = false when no vertex is reached from both sides.
*/
func (bs *BidirectionalSearch) ShortestPathSearch(s, t da.Index, alpha da.Preference) (*ShortestPath, bool, error) {
	n := bs.graph.NumberOfVertices()
	if int(s) >= n || int(t) >= n {
		return nil, false, fmt.Errorf("%w: source %d, target %d, number of vertices %d", ErrInvalidNodeId, s, t, n)
	}
	if err := alpha.Validate(); err != nil {
		return nil, false, err
	}

	bs.initQuery(s, t, n)

	for !bs.pq.IsEmpty() {
		if bs.stoppingCriterion && bs.pq.GetMinrank() >= bs.best.totalCost {
			break
		}
		candidate, _ := bs.pq.ExtractMin()
		bs.processState(candidate.GetItem(), alpha)
	}

	if !bs.best.found() {
		return nil, false, nil
	}

	edges, err := bs.retrievePath(bs.best.vertex)
	if err != nil {
		return nil, false, err
	}

	return NewShortestPath(s, t, bs.best.vertex, edges, bs.best.costs, bs.best.totalCost), true, nil
}

func (bs *BidirectionalSearch) initQuery(s, t da.Index, n int) {
	bs.source = s
	bs.target = t

	bs.forwardInfo = make([]VertexInfo, n)
	bs.backwardInfo = make([]VertexInfo, n)
	initInfWeightVertexInfo(bs.forwardInfo)
	initInfWeightVertexInfo(bs.backwardInfo)

	noParent := newVertexEdgePair(da.INVALID_VERTEX_ID, da.INVALID_EDGE_ID)
	bs.forwardInfo[s] = NewVertexInfo(da.CostVector{}, 0, noParent)
	bs.backwardInfo[t] = NewVertexInfo(da.CostVector{}, 0, noParent)

	bs.pq.Clear()
	bs.push(NewSearchState(s, FORWARD, da.CostVector{}, 0))
	bs.push(NewSearchState(t, BACKWARD, da.CostVector{}, 0))

	bs.best = newEmptyMeetingVertex()
	bs.stats = SearchStats{}
}

func (bs *BidirectionalSearch) push(state SearchState) {
	bs.pq.Insert(da.NewPriorityQueueNode(state.totalCost, state))
	bs.stats.PushedStates++
}

func (bs *BidirectionalSearch) labels(direction Direction) []VertexInfo {
	if direction == FORWARD {
		return bs.forwardInfo
	}
	return bs.backwardInfo
}

func (bs *BidirectionalSearch) adjacentEdges(u da.Index, direction Direction) []da.HalfEdge {
	if direction == FORWARD {
		return bs.graph.GetOutEdges(u)
	}
	return bs.graph.GetInEdges(u)
}

func (bs *BidirectionalSearch) processState(candidate SearchState, alpha da.Preference) {
	u := candidate.vertex
	own := bs.labels(candidate.direction)
	opposite := bs.labels(candidate.direction.opposite())

	// obsolete entry, u got a better label after this one was pushed
	if candidate.totalCost > own[u].totalCost {
		bs.stats.StaleStates++
		return
	}
	bs.stats.SettledStates++

	mergedCost := candidate.totalCost + opposite[u].totalCost
	if mergedCost < bs.best.totalCost {
		bs.best = meetingVertex{
			vertex:    u,
			costs:     da.AddCosts(candidate.costs, opposite[u].costs),
			totalCost: mergedCost,
		}
	}

	for _, halfEdge := range bs.adjacentEdges(u, candidate.direction) {
		bs.stats.RelaxedEdges++
		v := halfEdge.GetHead()
		newTotalCost := candidate.totalCost + da.Scalarize(halfEdge.GetCosts(), alpha)
		if newTotalCost >= own[v].totalCost {
			continue
		}

		newCosts := da.AddCosts(candidate.costs, halfEdge.GetCosts())
		own[v] = NewVertexInfo(newCosts, newTotalCost, newVertexEdgePair(u, halfEdge.GetEdgeId()))
		bs.push(NewSearchState(v, candidate.direction, newCosts, newTotalCost))
	}
}

func (bs *BidirectionalSearch) GetStats() SearchStats {
	return bs.stats
}

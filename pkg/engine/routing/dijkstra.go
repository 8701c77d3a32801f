package routing

import (
	"fmt"

	"github.com/lintang-b-s/prefroute/pkg"
	da "github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/lintang-b-s/prefroute/pkg/util"
)

// Dijkstra plain one-to-all multi-criteria dijkstra over the original edges of the graph, shortcuts ignored.
// slow, used to verify answers of the bidirectional search.
type Dijkstra struct {
	outEdges [][]da.HalfEdge

	source      da.Index
	forwardInfo []VertexInfo

	pq *da.MinHeap[SearchState]

	numSettledNodes int
}

func NewDijkstra(graph *da.Graph) *Dijkstra {
	outEdges, _ := graph.OriginalAdjacency()
	return &Dijkstra{
		outEdges: outEdges,
		pq:       da.NewFourAryHeap[SearchState](),
	}
}

// ShortestPath single-source shortest paths from s to all other vertices under alpha.
func (us *Dijkstra) ShortestPath(s da.Index, alpha da.Preference) error {
	n := len(us.outEdges)
	if int(s) >= n {
		return fmt.Errorf("%w: source %d, number of vertices %d", ErrInvalidNodeId, s, n)
	}
	if err := alpha.Validate(); err != nil {
		return err
	}

	us.source = s
	us.forwardInfo = make([]VertexInfo, n)
	initInfWeightVertexInfo(us.forwardInfo)
	us.forwardInfo[s] = NewVertexInfo(da.CostVector{}, 0, newVertexEdgePair(da.INVALID_VERTEX_ID, da.INVALID_EDGE_ID))
	us.numSettledNodes = 0

	us.pq.Clear()
	us.pq.Insert(da.NewPriorityQueueNode(0, NewSearchState(s, FORWARD, da.CostVector{}, 0)))

	for !us.pq.IsEmpty() {
		node, _ := us.pq.ExtractMin()
		state := node.GetItem()
		u := state.vertex
		if state.totalCost > us.forwardInfo[u].totalCost {
			continue
		}
		us.numSettledNodes++

		for _, e := range us.outEdges[u] {
			v := e.GetHead()
			newCost := state.totalCost + da.Scalarize(e.GetCosts(), alpha)
			if newCost >= us.forwardInfo[v].totalCost {
				continue
			}
			costs := da.AddCosts(state.costs, e.GetCosts())
			us.forwardInfo[v] = NewVertexInfo(costs, newCost, newVertexEdgePair(u, e.GetEdgeId()))
			us.pq.Insert(da.NewPriorityQueueNode(newCost, NewSearchState(v, FORWARD, costs, newCost)))
		}
	}
	return nil
}

// GetTotalCost scalarized cost of the last search's path to t, pkg.INF_WEIGHT when unreachable.
func (us *Dijkstra) GetTotalCost(t da.Index) float64 {
	return us.forwardInfo[t].totalCost
}

func (us *Dijkstra) GetCosts(t da.Index) da.CostVector {
	return us.forwardInfo[t].costs
}

func (us *Dijkstra) Reached(t da.Index) bool {
	return us.forwardInfo[t].totalCost < pkg.INF_WEIGHT
}

// PathTo original edge ids of the last search's path from the source to t. nil when t is unreachable.
func (us *Dijkstra) PathTo(t da.Index) []da.Index {
	if !us.Reached(t) {
		return nil
	}
	path := make([]da.Index, 0)
	for curr := t; us.forwardInfo[curr].parent.isValid(); curr = us.forwardInfo[curr].parent.getVertex() {
		path = append(path, us.forwardInfo[curr].parent.getEdge())
	}
	return util.ReverseG(path)
}

func (us *Dijkstra) GetNumSettledNodes() int {
	return us.numSettledNodes
}

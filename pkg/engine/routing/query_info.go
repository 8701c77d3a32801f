package routing

import (
	"github.com/lintang-b-s/prefroute/pkg"
	da "github.com/lintang-b-s/prefroute/pkg/datastructure"
)

type Direction uint8

const (
	FORWARD Direction = iota
	BACKWARD
)

func (d Direction) String() string {
	if d == FORWARD {
		return "forward"
	}
	return "backward"
}

func (d Direction) opposite() Direction {
	if d == FORWARD {
		return BACKWARD
	}
	return FORWARD
}

// SearchState one priority queue entry. totalCost is accumulated next to costs at every relaxation,
// never recomputed from it.
type SearchState struct {
	vertex    da.Index
	direction Direction
	costs     da.CostVector
	totalCost float64
}

func NewSearchState(vertex da.Index, direction Direction, costs da.CostVector, totalCost float64) SearchState {
	return SearchState{
		vertex:    vertex,
		direction: direction,
		costs:     costs,
		totalCost: totalCost,
	}
}

func (s SearchState) GetVertex() da.Index {
	return s.vertex
}

func (s SearchState) GetDirection() Direction {
	return s.direction
}

func (s SearchState) GetCosts() da.CostVector {
	return s.costs
}

func (s SearchState) GetTotalCost() float64 {
	return s.totalCost
}

// vertexEdgePair predecessor (forward) or successor (backward) of a vertex and the edge connecting them.
type vertexEdgePair struct {
	vertex da.Index
	edge   da.Index
}

func newVertexEdgePair(vertex, edge da.Index) vertexEdgePair {
	return vertexEdgePair{vertex: vertex, edge: edge}
}

func (ve vertexEdgePair) getVertex() da.Index {
	return ve.vertex
}

func (ve vertexEdgePair) getEdge() da.Index {
	return ve.edge
}

func (ve vertexEdgePair) isValid() bool {
	return ve.edge != da.INVALID_EDGE_ID
}

// VertexInfo best label of a vertex in one direction.
type VertexInfo struct {
	costs     da.CostVector
	totalCost float64
	parent    vertexEdgePair
}

func NewVertexInfo(costs da.CostVector, totalCost float64, parent vertexEdgePair) VertexInfo {
	return VertexInfo{
		costs:     costs,
		totalCost: totalCost,
		parent:    parent,
	}
}

func (vi VertexInfo) GetTotalCost() float64 {
	return vi.totalCost
}

func (vi VertexInfo) GetCosts() da.CostVector {
	return vi.costs
}

func (vi VertexInfo) GetParent() vertexEdgePair {
	return vi.parent
}

func initInfWeightVertexInfo(vs []VertexInfo) {
	for i := range vs {
		vs[i] = NewVertexInfo(da.CostVector{}, pkg.INF_WEIGHT,
			newVertexEdgePair(da.INVALID_VERTEX_ID, da.INVALID_EDGE_ID))
	}
}

// meetingVertex best vertex where a forward and a backward label join.
type meetingVertex struct {
	vertex    da.Index
	costs     da.CostVector
	totalCost float64
}

func newEmptyMeetingVertex() meetingVertex {
	return meetingVertex{vertex: da.INVALID_VERTEX_ID, totalCost: pkg.INF_WEIGHT}
}

func (m meetingVertex) found() bool {
	return m.vertex != da.INVALID_VERTEX_ID
}

// SearchStats counters of one query.
type SearchStats struct {
	SettledStates int
	StaleStates   int
	RelaxedEdges  int
	PushedStates  int
}

// ShortestPath unpacked result of a query.
type ShortestPath struct {
	source, target da.Index
	meeting        da.Index
	edges          []da.Index
	costs          da.CostVector
	totalCost      float64
}

func NewShortestPath(source, target, meeting da.Index, edges []da.Index, costs da.CostVector,
	totalCost float64) *ShortestPath {
	return &ShortestPath{
		source:    source,
		target:    target,
		meeting:   meeting,
		edges:     edges,
		costs:     costs,
		totalCost: totalCost,
	}
}

func (sp *ShortestPath) GetSource() da.Index {
	return sp.source
}

func (sp *ShortestPath) GetTarget() da.Index {
	return sp.target
}

func (sp *ShortestPath) GetMeetingVertex() da.Index {
	return sp.meeting
}

// GetEdges original edge ids from source to target.
func (sp *ShortestPath) GetEdges() []da.Index {
	return sp.edges
}

func (sp *ShortestPath) GetCosts() da.CostVector {
	return sp.costs
}

func (sp *ShortestPath) GetTotalCost() float64 {
	return sp.totalCost
}

package routing

import (
	da "github.com/lintang-b-s/prefroute/pkg/datastructure"
)

// Graph read-only view of the contracted graph the search runs on.
type Graph interface {
	GetOutEdges(u da.Index) []da.HalfEdge
	GetInEdges(u da.Index) []da.HalfEdge
	UnpackPath(edgeIds []da.Index, source da.Index) ([]da.Index, error)
	NumberOfVertices() int
}

type Router interface {
	ShortestPath(s, t da.Index, alpha da.Preference) (*ShortestPath, bool, error)
}

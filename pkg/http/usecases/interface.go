package usecases

import (
	"github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/lintang-b-s/prefroute/pkg/engine/routing"
	"github.com/lintang-b-s/prefroute/pkg/spatialindex"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
	ShortestPath(s, t datastructure.Index, alpha datastructure.Preference) (*routing.ShortestPath, bool, error)
}

type SpatialIndex interface {
	NearestVertex(qLat, qLon, radius float64) (spatialindex.VertexPoint, error)
}

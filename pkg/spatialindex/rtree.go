package spatialindex

import (
	"errors"
	"math"

	"github.com/lintang-b-s/prefroute/pkg"
	"github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/lintang-b-s/prefroute/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

var ErrEmptyIndex = errors.New("spatial index is empty")

type Rtree struct {
	tr *rtree.RTreeG[VertexPoint]
}

type VertexPoint struct {
	id  datastructure.Index
	lat float64
	lon float64
}

func (vp VertexPoint) GetID() datastructure.Index {
	return vp.id
}

func (vp VertexPoint) GetLat() float64 {
	return vp.lat
}

func (vp VertexPoint) GetLon() float64 {
	return vp.lon
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[VertexPoint]
	return &Rtree{
		tr: &tr,
	}
}

// Build. one point leaf per graph vertex
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	graph.ForVertices(func(v datastructure.Vertex) {
		rt.Insert(v.GetID(), v.GetLat(), v.GetLon())
	})
	log.Info("R-tree spatial index built.", zap.Int("vertices", rt.tr.Len()))
}

func (rt *Rtree) Insert(id datastructure.Index, lat, lon float64) {
	p := [2]float64{lon, lat}
	rt.tr.Insert(p, p, VertexPoint{id: id, lat: lat, lon: lon})
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius all vertices inside the bounding box of radius (in km) around (qLat, qLon)
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []VertexPoint {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]VertexPoint, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data VertexPoint) bool {
			results = append(results, data)
			return true
		})
	return results
}

func closest(qLat, qLon float64, cands []VertexPoint) (VertexPoint, float64) {
	best := VertexPoint{id: datastructure.INVALID_VERTEX_ID}
	bestDist := math.Inf(1)
	for _, c := range cands {
		d := geo.CalculateHaversineDistance(qLat, qLon, c.lat, c.lon)
		if d < bestDist || (d == bestDist && c.id < best.id) {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

// NearestVertex closest vertex to (qLat, qLon) by haversine distance. the search box starts at radius km and
// doubles until it hits something, then is widened once so that it covers the whole circle of the best distance.
func (rt *Rtree) NearestVertex(qLat, qLon, radius float64) (VertexPoint, error) {
	if rt.tr.Len() == 0 {
		return VertexPoint{}, ErrEmptyIndex
	}

	var cands []VertexPoint
	for step := 0; step < pkg.NEAREST_NODE_MAX_STEP && len(cands) == 0; step++ {
		cands = rt.SearchWithinRadius(qLat, qLon, radius)
		radius *= 2
	}

	if len(cands) == 0 {
		cands = make([]VertexPoint, 0, rt.tr.Len())
		rt.tr.Scan(func(min, max [2]float64, data VertexPoint) bool {
			cands = append(cands, data)
			return true
		})
		best, _ := closest(qLat, qLon, cands)
		return best, nil
	}

	_, bestDist := closest(qLat, qLon, cands)
	// box corners are at distance radius, its sides only radius/sqrt(2) away
	best, _ := closest(qLat, qLon, rt.SearchWithinRadius(qLat, qLon, bestDist*math.Sqrt2+1e-9))
	return best, nil
}

package usecases

import (
	"context"
	"errors"

	"github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/lintang-b-s/prefroute/pkg/engine/routing"
	"github.com/lintang-b-s/prefroute/pkg/geo"
	"github.com/lintang-b-s/prefroute/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	searchRadius float64
	costTags     []string
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialindex SpatialIndex,
	searchRadius float64, costTags []string) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialindex,
		searchRadius: searchRadius,
		costTags:     costTags,
	}
}

// CostTags names of the cost criteria, in cost vector order.
func (rs *RoutingService) CostTags() []string {
	tags := make([]string, len(rs.costTags))
	copy(tags, rs.costTags)
	return tags
}

func (rs *RoutingService) snap(c geo.Coordinate) (datastructure.Index, error) {
	vp, err := rs.spatialIndex.NearestVertex(c.Lat, c.Lon, rs.searchRadius)
	if err != nil {
		return datastructure.INVALID_VERTEX_ID, util.WrapErrorf(errors.Join(ErrNoNearbyVertex, err), util.ErrNotFound,
			"snap %f,%f", c.Lat, c.Lon)
	}
	return vp.GetID(), nil
}

// ClosestNode location of the graph vertex closest to c.
func (rs *RoutingService) ClosestNode(c geo.Coordinate) (geo.Coordinate, error) {
	v, err := rs.snap(c)
	if err != nil {
		return geo.Coordinate{}, err
	}
	lat, lon := rs.engine.GetGraph().GetVertexCoordinates(v)
	return geo.NewCoordinate(lat, lon), nil
}

type leg struct {
	edges     []datastructure.Index
	costs     datastructure.CostVector
	totalCost float64
}

// FindShortestPath route through waypoints in order under preference alpha. every waypoint is snapped to its
// closest vertex and the legs between consecutive waypoints are searched concurrently.
func (rs *RoutingService) FindShortestPath(ctx context.Context, waypoints []geo.Coordinate,
	alpha datastructure.Preference) (*datastructure.Route, error) {
	if len(waypoints) < 2 {
		return nil, util.WrapErrorf(ErrTooFewWaypoints, util.ErrBadParamInput, "got %d waypoints", len(waypoints))
	}
	if err := alpha.Validate(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "find shortest path")
	}

	vertices := make([]datastructure.Index, len(waypoints))
	for i, w := range waypoints {
		v, err := rs.snap(w)
		if err != nil {
			return nil, err
		}
		vertices[i] = v
	}

	legs := make([]leg, len(vertices)-1)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < len(legs); i++ {
		s, t := vertices[i], vertices[i+1]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sp, found, err := rs.engine.ShortestPath(s, t, alpha)
			if err != nil {
				if errors.Is(err, routing.ErrInvalidNodeId) || errors.Is(err, routing.ErrInvalidCostInput) {
					return util.WrapErrorf(err, util.ErrBadParamInput, "leg %d", i)
				}
				return util.WrapErrorf(err, util.ErrInternalServerError, "leg %d", i)
			}
			if !found {
				return util.WrapErrorf(ErrPathNotFound, util.ErrNotFound, "from %f,%f to %f,%f",
					waypoints[i].Lat, waypoints[i].Lon, waypoints[i+1].Lat, waypoints[i+1].Lon)
			}
			legs[i] = leg{edges: sp.GetEdges(), costs: sp.GetCosts(), totalCost: sp.GetTotalCost()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		rs.log.Debug("find shortest path failed", zap.Error(err))
		return nil, err
	}

	route := &datastructure.Route{
		Waypoints: append([]geo.Coordinate(nil), waypoints...),
		Edges:     make([]datastructure.Index, 0),
		Alpha:     alpha,
	}
	for _, l := range legs {
		route.Edges = append(route.Edges, l.edges...)
		route.Costs = datastructure.AddCosts(route.Costs, l.costs)
		route.TotalCost += l.totalCost
	}

	graph := rs.engine.GetGraph()
	route.Coordinates = make([]geo.Coordinate, 0, len(route.Edges)+1)
	for _, v := range graph.PathVertices(route.Edges, vertices[0]) {
		lat, lon := graph.GetVertexCoordinates(v)
		route.Coordinates = append(route.Coordinates, geo.NewCoordinate(lat, lon))
	}
	route.Polyline = geo.PolylineFromCoords(route.Coordinates)
	route.DistanceKM = geo.PathLength(route.Coordinates)

	rs.log.Debug("find shortest path", zap.Int("waypoints", len(waypoints)), zap.Int("edges", len(route.Edges)),
		zap.Float64("cost", route.TotalCost))
	return route, nil
}

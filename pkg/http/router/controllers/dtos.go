package controllers

import (
	"fmt"

	"github.com/lintang-b-s/prefroute/pkg"
	"github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/lintang-b-s/prefroute/pkg/geo"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=4,max=128"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type fspRequest struct {
	ID        int              `json:"id" validate:"gte=0"`
	Waypoints []geo.Coordinate `json:"waypoints" validate:"required,min=2,dive"`
	Alpha     []float64        `json:"alpha" validate:"required,dive,gte=0"`
}

type preferenceRequest struct {
	Alpha []float64 `json:"alpha" validate:"required,dive,gte=0"`
}

type preferenceResponse struct {
	Alpha datastructure.Preference `json:"alpha"`
}

type closestRequest struct {
	Lat float64 `validate:"min=-90,max=90"`
	Lon float64 `validate:"min=-180,max=180"`
}

func toPreference(alpha []float64) (datastructure.Preference, error) {
	if len(alpha) != pkg.COST_DIMENSION {
		return datastructure.Preference{}, fmt.Errorf("alpha must have %d components, got %d",
			pkg.COST_DIMENSION, len(alpha))
	}
	return datastructure.NewPreference(alpha...), nil
}

type routeResponse struct {
	ID          int                      `json:"id"`
	Waypoints   []geo.Coordinate         `json:"waypoints"`
	Coordinates []geo.Coordinate         `json:"coordinates"`
	Polyline    string                   `json:"polyline"`
	Costs       map[string]float64       `json:"costs"`
	CostVector  datastructure.CostVector `json:"cost_vector"`
	TotalCost   float64                  `json:"total_cost"`
	Alpha       datastructure.Preference `json:"alpha"`
	DistanceKM  float64                  `json:"distance_km"`
	BoundingBox [2]geo.Coordinate        `json:"bbox"`
}

// NewRouteResponse route with its costs keyed by cost tag.
func NewRouteResponse(route datastructure.Route, tags []string) routeResponse {
	costs := make(map[string]float64, len(tags))
	for i, tag := range tags {
		if i < len(route.Costs) {
			costs[tag] = route.Costs[i]
		}
	}
	sw, ne := geo.BoundingBox(route.Coordinates)
	return routeResponse{
		ID:          route.ID,
		Waypoints:   route.Waypoints,
		Coordinates: route.Coordinates,
		Polyline:    route.Polyline,
		Costs:       costs,
		CostVector:  route.Costs,
		TotalCost:   route.TotalCost,
		Alpha:       route.Alpha,
		DistanceKM:  route.DistanceKM,
		BoundingBox: [2]geo.Coordinate{sw, ne},
	}
}

func NewRoutesResponse(routes []datastructure.Route, tags []string) []routeResponse {
	resp := make([]routeResponse, 0, len(routes))
	for _, r := range routes {
		resp = append(resp, NewRouteResponse(r, tags))
	}
	return resp
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

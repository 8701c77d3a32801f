package datastructure

import "github.com/lintang-b-s/prefroute/pkg/geo"

// Route. a computed route through one or more waypoints, as returned to and stored for a user.
type Route struct {
	ID          int              `json:"id"`
	Waypoints   []geo.Coordinate `json:"waypoints"`
	Coordinates []geo.Coordinate `json:"coordinates"`
	Polyline    string           `json:"polyline"`
	Edges       []Index          `json:"edges"`
	Costs       CostVector       `json:"costs"`
	TotalCost   float64          `json:"total_cost"`
	Alpha       Preference       `json:"alpha"`
	DistanceKM  float64          `json:"distance_km"`
}

// Clone deep copy, so callers may hand a Route out while it is still stored elsewhere.
func (r Route) Clone() Route {
	c := r
	c.Waypoints = append([]geo.Coordinate(nil), r.Waypoints...)
	c.Coordinates = append([]geo.Coordinate(nil), r.Coordinates...)
	c.Edges = append([]Index(nil), r.Edges...)
	return c
}

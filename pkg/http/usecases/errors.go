package usecases

import "errors"

var (
	ErrPathNotFound    = errors.New("no path found")
	ErrTooFewWaypoints = errors.New("at least two waypoints are required")
	ErrNoNearbyVertex  = errors.New("no vertex near coordinate")
)

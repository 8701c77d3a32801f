package controllers

import (
	"context"

	"github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/lintang-b-s/prefroute/pkg/geo"
)

type RoutingService interface {
	CostTags() []string
	ClosestNode(c geo.Coordinate) (geo.Coordinate, error)
	FindShortestPath(ctx context.Context, waypoints []geo.Coordinate, alpha datastructure.Preference) (*datastructure.Route, error)
}

type UserService interface {
	Username(token string) (string, error)
	Register(username, password string) (string, error)
	Login(username, password string) (string, error)
	Preference(token string) (datastructure.Preference, error)
	SetPreference(token string, alpha datastructure.Preference) error
	ResetPreference(token string) (datastructure.Preference, error)
	Routes(token string) ([]datastructure.Route, error)
	AddRoute(token string, route datastructure.Route) (datastructure.Route, error)
	UpdateRoute(token string, id int, route datastructure.Route) (datastructure.Route, error)
	DeleteRoute(token string, id int) error
	Reset(token string) error
}

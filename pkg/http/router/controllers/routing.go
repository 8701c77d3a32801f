package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/lintang-b-s/prefroute/pkg/geo"
	helper "github.com/lintang-b-s/prefroute/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	userService    UserService
	validator      *requestValidator
	log            *zap.Logger
}

func New(routingService RoutingService, userService UserService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		userService:    userService,
		validator:      newRequestValidator(),
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/cost_tags", api.costTags)
	group.GET("/closest", api.closest)
	group.POST("/fsp", api.findShortestPath)

	group.POST("/register", api.register)
	group.POST("/login", api.login)

	group.GET("/preference", api.getPreference)
	group.POST("/preference", api.setPreference)
	group.POST("/preference/reset", api.resetPreference)

	group.GET("/routes", api.getRoutes)
	group.POST("/routes", api.saveRoute)
	group.DELETE("/routes/:id", api.deleteRoute)

	group.POST("/reset", api.resetData)
}

func (api *routingAPI) costTags(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": api.routingService.CostTags()}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *routingAPI) closest(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request closestRequest
		err     error
	)

	query := r.URL.Query()
	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	location, err := api.routingService.ClosestNode(geo.NewCoordinate(request.Lat, request.Lon))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": location}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// readFspRequest decodes and validates a route request body.
func (api *routingAPI) readFspRequest(w http.ResponseWriter, r *http.Request) (fspRequest, datastructure.Preference, bool) {
	var request fspRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return request, datastructure.Preference{}, false
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return request, datastructure.Preference{}, false
	}
	alpha, err := toPreference(request.Alpha)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return request, datastructure.Preference{}, false
	}
	return request, alpha, true
}

// findShortestPath computes a route; a non-zero id replaces that driven route of the user with the result.
func (api *routingAPI) findShortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	token := extractToken(r)
	if _, err := api.userService.Username(token); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	request, alpha, ok := api.readFspRequest(w, r)
	if !ok {
		return
	}

	route, err := api.routingService.FindShortestPath(r.Context(), request.Waypoints, alpha)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if request.ID != 0 {
		updated, err := api.userService.UpdateRoute(token, request.ID, *route)
		if err != nil {
			api.getStatusCode(w, r, err)
			return
		}
		route = &updated
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteResponse(*route,
		api.routingService.CostTags())}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

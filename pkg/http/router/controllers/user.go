package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

func (api *routingAPI) readCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var request credentialsRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return request, false
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return request, false
	}
	return request, true
}

func (api *routingAPI) register(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, ok := api.readCredentials(w, r)
	if !ok {
		return
	}
	token, err := api.userService.Register(request.Username, request.Password)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusCreated, envelope{"data": tokenResponse{Token: token}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *routingAPI) login(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, ok := api.readCredentials(w, r)
	if !ok {
		return
	}
	token, err := api.userService.Login(request.Username, request.Password)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": tokenResponse{Token: token}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *routingAPI) getPreference(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	alpha, err := api.userService.Preference(extractToken(r))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": preferenceResponse{Alpha: alpha}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *routingAPI) setPreference(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	token := extractToken(r)
	if _, err := api.userService.Username(token); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	var request preferenceRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	alpha, err := toPreference(request.Alpha)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	if err := api.userService.SetPreference(token, alpha); err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": preferenceResponse{Alpha: alpha}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *routingAPI) resetPreference(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	alpha, err := api.userService.ResetPreference(extractToken(r))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": preferenceResponse{Alpha: alpha}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *routingAPI) writeRoutes(w http.ResponseWriter, r *http.Request, token string) {
	routes, err := api.userService.Routes(token)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRoutesResponse(routes,
		api.routingService.CostTags())}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *routingAPI) getRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	api.writeRoutes(w, r, extractToken(r))
}

// saveRoute computes a route and stores it as a driven route: id 0 adds a new one, otherwise that id is replaced.
func (api *routingAPI) saveRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
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

	if request.ID == 0 {
		_, err = api.userService.AddRoute(token, *route)
	} else {
		_, err = api.userService.UpdateRoute(token, request.ID, *route)
	}
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	api.writeRoutes(w, r, token)
}

func (api *routingAPI) deleteRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id, err := strconv.Atoi(p.ByName("id"))
	if err != nil || id <= 0 {
		api.BadRequestResponse(w, r, errors.New("route id must be a positive integer"))
		return
	}
	token := extractToken(r)
	if err := api.userService.DeleteRoute(token, id); err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	api.writeRoutes(w, r, token)
}

// resetData drops the driven routes and the preference of the user.
func (api *routingAPI) resetData(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.userService.Reset(extractToken(r)); err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"message": "user data reset"}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

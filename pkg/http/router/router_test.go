package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/lintang-b-s/prefroute/pkg/engine/routing"
	"github.com/lintang-b-s/prefroute/pkg/http/usecases"
	"github.com/lintang-b-s/prefroute/pkg/spatialindex"
	"github.com/lintang-b-s/prefroute/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

/*
two ways from 0 to 2: through 1 (short, steep) or through 3 (long, flat).

	0 -> 1 -> 2   each (1000, 50, 0)
	0 -> 3 -> 2   each (1500, 0, 0)
*/
func newTestHandler(t *testing.T) http.Handler {
	routingService, store := newTestServices(t)
	return NewAPI(zap.NewNop()).Handler(routingService, store, nil)
}

func newTestServices(t *testing.T) (*usecases.RoutingService, *user.Store) {
	gb := datastructure.NewGraphBuilder()
	gb.AddVertex(-7.80, 110.30, 0)
	gb.AddVertex(-7.79, 110.31, 0)
	gb.AddVertex(-7.80, 110.32, 0)
	gb.AddVertex(-7.81, 110.31, 0)
	gb.AddEdge(0, 1, datastructure.NewCostVector(1000, 50, 0))
	gb.AddEdge(1, 2, datastructure.NewCostVector(1000, 50, 0))
	gb.AddEdge(0, 3, datastructure.NewCostVector(1500, 0, 0))
	gb.AddEdge(3, 2, datastructure.NewCostVector(1500, 0, 0))
	g, err := gb.Build(0)
	require.NoError(t, err)

	log := zap.NewNop()
	rt := spatialindex.NewRtree()
	rt.Build(g, log)
	routingService := usecases.NewRoutingService(log, routing.NewRoutingEngine(g, log, false), rt, 0.05,
		[]string{"Distance", "Height", "UnsuitDist"})
	store := user.NewStore(datastructure.NewPreference(0, 1, 0), log)
	return routingService, store
}

func TestRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	testCases := []struct {
		name       string
		trustProxy bool
		wantStatus int
	}{
		{name: "headers not trusted", trustProxy: false, wantStatus: http.StatusTooManyRequests},
		{name: "behind trusted proxy", trustProxy: true, wantStatus: http.StatusOK},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			routingService, store := newTestServices(t)
			h := NewAPI(zap.NewNop(), WithTrustedProxy(tt.trustProxy)).
				Handler(routingService, store, NewRateLimiter(0.001, 2))

			var last int
			for i := 0; i < 5; i++ {
				req := httptest.NewRequest(http.MethodGet, "/api/cost_tags", nil)
				req.RemoteAddr = "198.51.100.3:5555"
				req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)
				last = w.Code
			}
			assert.Equal(t, tt.wantStatus, last)
		})
	}
}

type apiResponse struct {
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) (int, apiResponse) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

func register(t *testing.T, h http.Handler) string {
	code, resp := do(t, h, http.MethodPost, "/api/register", "",
		map[string]string{"username": "lintang", "password": "hunter2"})
	require.Equal(t, http.StatusCreated, code)
	var tok struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &tok))
	return tok.Token
}

type routeBody struct {
	ID        int                `json:"id"`
	Costs     map[string]float64 `json:"costs"`
	TotalCost float64            `json:"total_cost"`
	Polyline  string             `json:"polyline"`
}

func fspBody(id int, alpha []float64) map[string]interface{} {
	return map[string]interface{}{
		"id": id,
		"waypoints": []map[string]float64{
			{"lat": -7.80, "lon": 110.30},
			{"lat": -7.80, "lon": 110.32},
		},
		"alpha": alpha,
	}
}

func TestCostTagsAndClosest(t *testing.T) {
	h := newTestHandler(t)

	code, resp := do(t, h, http.MethodGet, "/api/cost_tags", "", nil)
	require.Equal(t, http.StatusOK, code)
	var tags []string
	require.NoError(t, json.Unmarshal(resp.Data, &tags))
	assert.Equal(t, []string{"Distance", "Height", "UnsuitDist"}, tags)

	code, resp = do(t, h, http.MethodGet, "/api/closest?lat=-7.7901&lon=110.3102", "", nil)
	require.Equal(t, http.StatusOK, code)
	var loc struct{ Lat, Lon float64 }
	require.NoError(t, json.Unmarshal(resp.Data, &loc))
	assert.Equal(t, -7.79, loc.Lat)
	assert.Equal(t, 110.31, loc.Lon)

	code, _ = do(t, h, http.MethodGet, "/api/closest?lat=abc&lon=110", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, h, http.MethodGet, "/api/closest?lat=95&lon=110", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRegisterLogin(t *testing.T) {
	h := newTestHandler(t)
	register(t, h)

	code, _ := do(t, h, http.MethodPost, "/api/register", "", map[string]string{"username": "lintang", "password": "other1"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, h, http.MethodPost, "/api/login", "", map[string]string{"username": "lintang", "password": "wrong!"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp := do(t, h, http.MethodPost, "/api/login", "", map[string]string{"username": "lintang", "password": "hunter2"})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(resp.Data), "token")

	code, _ = do(t, h, http.MethodPost, "/api/register", "", map[string]string{"username": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFindShortestPathFollowsPreference(t *testing.T) {
	h := newTestHandler(t)
	token := register(t, h)

	testCases := []struct {
		name         string
		alpha        []float64
		wantDistance float64
		wantHeight   float64
	}{
		{name: "distance only", alpha: []float64{1, 0, 0}, wantDistance: 2000, wantHeight: 100},
		{name: "height only", alpha: []float64{0, 1, 0}, wantDistance: 3000, wantHeight: 0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := do(t, h, http.MethodPost, "/api/fsp", token, fspBody(0, tt.alpha))
			require.Equal(t, http.StatusOK, code, resp.Error.Message)
			var route routeBody
			require.NoError(t, json.Unmarshal(resp.Data, &route))
			assert.Equal(t, tt.wantDistance, route.Costs["Distance"])
			assert.Equal(t, tt.wantHeight, route.Costs["Height"])
			assert.NotEmpty(t, route.Polyline)
		})
	}
}

func TestFindShortestPathErrors(t *testing.T) {
	h := newTestHandler(t)
	token := register(t, h)

	testCases := []struct {
		name       string
		token      string
		body       interface{}
		wantStatus int
	}{
		{name: "no token", body: fspBody(0, []float64{1, 0, 0}), wantStatus: http.StatusUnauthorized},
		{name: "wrong alpha length", token: token, body: fspBody(0, []float64{1, 0}), wantStatus: http.StatusBadRequest},
		{name: "negative alpha", token: token, body: fspBody(0, []float64{1, -1, 0}), wantStatus: http.StatusBadRequest},
		{name: "unknown route id", token: token, body: fspBody(42, []float64{1, 0, 0}), wantStatus: http.StatusNotFound},
		{
			name:  "one waypoint",
			token: token,
			body: map[string]interface{}{
				"waypoints": []map[string]float64{{"lat": -7.80, "lon": 110.30}},
				"alpha":     []float64{1, 0, 0},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "unreachable",
			token: token,
			body: map[string]interface{}{
				"waypoints": []map[string]float64{{"lat": -7.80, "lon": 110.32}, {"lat": -7.80, "lon": 110.30}},
				"alpha":     []float64{1, 0, 0},
			},
			wantStatus: http.StatusNotFound,
		},
		{name: "unknown field", token: token, body: map[string]interface{}{"foo": 1}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := do(t, h, http.MethodPost, "/api/fsp", tt.token, tt.body)
			assert.Equal(t, tt.wantStatus, code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestPreferenceEndpoints(t *testing.T) {
	h := newTestHandler(t)
	token := register(t, h)

	var pref struct {
		Alpha []float64 `json:"alpha"`
	}

	code, resp := do(t, h, http.MethodGet, "/api/preference", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &pref))
	assert.Equal(t, []float64{0, 1, 0}, pref.Alpha)

	code, _ = do(t, h, http.MethodPost, "/api/preference", token, map[string]interface{}{"alpha": []float64{0.2, 0.3, 0.5}})
	require.Equal(t, http.StatusOK, code)

	code, resp = do(t, h, http.MethodGet, "/api/preference", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &pref))
	assert.Equal(t, []float64{0.2, 0.3, 0.5}, pref.Alpha)

	code, _ = do(t, h, http.MethodPost, "/api/preference", token, map[string]interface{}{"alpha": []float64{-1, 0, 0}})
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = do(t, h, http.MethodPost, "/api/preference/reset", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &pref))
	assert.Equal(t, []float64{0, 1, 0}, pref.Alpha)

	code, _ = do(t, h, http.MethodGet, "/api/preference", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestDrivenRouteEndpoints(t *testing.T) {
	h := newTestHandler(t)
	token := register(t, h)

	routesOf := func(resp apiResponse) []routeBody {
		var routes []routeBody
		require.NoError(t, json.Unmarshal(resp.Data, &routes))
		return routes
	}

	code, resp := do(t, h, http.MethodPost, "/api/routes", token, fspBody(0, []float64{1, 0, 0}))
	require.Equal(t, http.StatusOK, code, resp.Error.Message)
	routes := routesOf(resp)
	require.Len(t, routes, 1)
	assert.Equal(t, 1, routes[0].ID)
	assert.Equal(t, 2000.0, routes[0].Costs["Distance"])

	// replace route 1 with the flat alternative
	code, resp = do(t, h, http.MethodPost, "/api/fsp", token, fspBody(1, []float64{0, 1, 0}))
	require.Equal(t, http.StatusOK, code, resp.Error.Message)

	code, resp = do(t, h, http.MethodGet, "/api/routes", token, nil)
	require.Equal(t, http.StatusOK, code)
	routes = routesOf(resp)
	require.Len(t, routes, 1)
	assert.Equal(t, 3000.0, routes[0].Costs["Distance"])

	code, resp = do(t, h, http.MethodPost, "/api/routes", token, fspBody(0, []float64{1, 0, 0}))
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, routesOf(resp), 2)

	code, resp = do(t, h, http.MethodDelete, "/api/routes/1", token, nil)
	require.Equal(t, http.StatusOK, code)
	routes = routesOf(resp)
	require.Len(t, routes, 1)
	assert.Equal(t, 2, routes[0].ID)

	code, _ = do(t, h, http.MethodDelete, "/api/routes/1", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, h, http.MethodDelete, "/api/routes/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, h, http.MethodPost, "/api/reset", token, nil)
	require.Equal(t, http.StatusOK, code)
	code, resp = do(t, h, http.MethodGet, "/api/routes", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, routesOf(resp))
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

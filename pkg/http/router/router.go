package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/prefroute/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/prefroute/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/prefroute/pkg/http/server"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type API struct {
	log        *zap.Logger
	trustProxy bool
}

type APIOption func(api *API)

// WithTrustedProxy client ip from proxy headers, see RealIP.
func WithTrustedProxy(trust bool) APIOption {
	return func(api *API) {
		api.trustProxy = trust
	}
}

func NewAPI(log *zap.Logger, opts ...APIOption) *API {
	api := &API{log: log}
	for _, opt := range opts {
		opt(api)
	}
	return api
}

// Handler the full middleware chain in front of the /api routes. limiter may be nil.
func (api *API) Handler(routingService controllers.RoutingService, userService controllers.UserService,
	limiter *RateLimiter) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	group := router_helper.NewRouteGroup(router, "/api")

	routes := controllers.New(routingService, userService, api.log)
	routes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP(api.trustProxy), Heartbeat("/healthz"), Logger(api.log)}
	if limiter != nil {
		mwChain = append(mwChain, limiter.Limit)
	}
	return alice.New(mwChain...).Then(router)
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,

	limiter *RateLimiter,
	routingService controllers.RoutingService,
	userService controllers.UserService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(routingService, userService, limiter), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-serverErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

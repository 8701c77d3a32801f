package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/lintang-b-s/prefroute/pkg/engine"
	"github.com/lintang-b-s/prefroute/pkg/http"
	"github.com/lintang-b-s/prefroute/pkg/http/usecases"
	"github.com/lintang-b-s/prefroute/pkg/logger"
	"github.com/lintang-b-s/prefroute/pkg/spatialindex"
	"github.com/lintang-b-s/prefroute/pkg/user"
	"github.com/lintang-b-s/prefroute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	graphFile = flag.String("graph", "", "contracted graph file, overrides graph_file from config")
	usersFile = flag.String("users", "", "users json file, overrides users_file from config")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	if *graphFile != "" {
		viper.Set("graph_file", *graphFile)
	}
	if *usersFile != "" {
		viper.Set("users_file", *usersFile)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	costTags, err := util.EdgeCostTags()
	if err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}
	defaultPreference, err := util.DefaultPreference()
	if err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	queryEngine, err := engine.NewEngine(viper.GetString("graph_file"), viper.GetInt("unpack_cache_size"),
		viper.GetBool("stopping_criterion"), logger)
	if err != nil {
		logger.Fatal("failed to initialize engine", zap.Error(err))
	}
	graph := queryEngine.GetGraph()
	routingEngine := queryEngine.GetRoutingEngine()

	rtree := spatialindex.NewRtree()
	rtree.Build(graph, logger)

	users := user.NewStore(datastructure.Preference(defaultPreference), logger)
	if err := users.Load(viper.GetString("users_file")); err != nil {
		logger.Fatal("failed to load users", zap.Error(err))
	}

	routingService := usecases.NewRoutingService(logger, routingEngine, rtree,
		viper.GetFloat64("nearest_node_radius"), costTags)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)
	if _, err := api.Use(ctx, logger, viper.GetBool("rate_limit"), routingService, users); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	signal := http.GracefulShutdown()
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("server error", zap.Error(err))
	}

	if err := users.Save(viper.GetString("users_file")); err != nil {
		logger.Error("failed to save users", zap.Error(err))
	}
	logger.Info("prefroute server stopped", zap.String("signal", signal.String()))
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}

package main

import (
	"flag"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/lintang-b-s/prefroute/pkg/concurrent"
	"github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/lintang-b-s/prefroute/pkg/engine"
	"github.com/lintang-b-s/prefroute/pkg/engine/routing"
	"github.com/lintang-b-s/prefroute/pkg/logger"
	"github.com/lintang-b-s/prefroute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	graphFile  = flag.String("graph", "", "contracted graph file, overrides graph_file from config")
	numQueries = flag.Int("n", 1000, "number of random queries")
	numWorkers = flag.Int("workers", runtime.NumCPU(), "number of query workers")
	seed       = flag.Int64("seed", 1, "random seed")
	verify     = flag.Bool("verify", false, "check every answer against a plain dijkstra over the original edges")
	sccOnly    = flag.Bool("scc", true, "draw source and target from the largest strongly connected component")
)

type query struct {
	s, t  datastructure.Index
	alpha datastructure.Preference
}

type queryResult struct {
	found    bool
	mismatch bool
	cost     float64
	settled  int
	duration time.Duration
	err      error
}

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	if *graphFile != "" {
		viper.Set("graph_file", *graphFile)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	queryEngine, err := engine.NewEngine(viper.GetString("graph_file"), viper.GetInt("unpack_cache_size"),
		viper.GetBool("stopping_criterion"), logger)
	if err != nil {
		logger.Fatal("failed to initialize engine", zap.Error(err))
	}
	graph := queryEngine.GetGraph()
	if graph.NumberOfVertices() == 0 {
		logger.Fatal("graph has no vertices")
	}

	candidates := make([]datastructure.Index, graph.NumberOfVertices())
	for i := range candidates {
		candidates[i] = datastructure.Index(i)
	}
	if *sccOnly {
		candidates = datastructure.LargestComponent(graph.RunKosaraju())
		logger.Info("sampling from the largest strongly connected component",
			zap.Int("vertices", len(candidates)))
	}
	n := len(candidates)

	stoppingCriterion := viper.GetBool("stopping_criterion")
	rd := rand.New(rand.NewSource(*seed))

	wp := concurrent.NewWorkerPool[query, queryResult](*numWorkers, *numQueries)
	wp.Start(func(q query) queryResult {
		start := time.Now()
		bs := routing.NewBidirectionalSearch(graph, routing.WithStoppingCriterion(stoppingCriterion))
		sp, found, err := bs.ShortestPathSearch(q.s, q.t, q.alpha)
		res := queryResult{found: found, settled: bs.GetStats().SettledStates, duration: time.Since(start), err: err}
		if found {
			res.cost = sp.GetTotalCost()
		}
		if *verify && err == nil {
			res.mismatch = !matchesDijkstra(graph, q, found, res.cost)
		}
		return res
	})

	begin := time.Now()
	for i := 0; i < *numQueries; i++ {
		var alpha datastructure.Preference
		for j := range alpha {
			alpha[j] = rd.Float64()
		}
		wp.AddJob(query{
			s:     candidates[rd.Intn(n)],
			t:     candidates[rd.Intn(n)],
			alpha: alpha,
		})
	}
	wp.Close()

	wp.Wait()
	wall := time.Since(begin)

	var (
		found, failed int
		mismatches    int
		latencies     []float64
		settled       []int
	)
	for res := range wp.CollectResults() {
		if res.err != nil {
			failed++
			logger.Warn("query failed", zap.Error(res.err))
			continue
		}
		if res.found {
			found++
		}
		if res.mismatch {
			mismatches++
		}
		latencies = append(latencies, float64(res.duration.Microseconds()))
		settled = append(settled, res.settled)
	}

	done := len(latencies)
	if done == 0 {
		logger.Fatal("no query finished", zap.Int("failed", failed))
	}
	logger.Info("random queries done",
		zap.Int("queries", *numQueries),
		zap.Int("workers", *numWorkers),
		zap.Bool("stopping_criterion", stoppingCriterion),
		zap.Int("found", found),
		zap.Int("failed", failed),
		zap.Bool("verify", *verify),
		zap.Int("mismatches", mismatches),
		zap.Float64("found_ratio", util.RoundFloat(float64(found)/float64(done), 4)),
		zap.Float64("mean_latency_us", util.RoundFloat(util.SumG(latencies)/float64(done), 2)),
		zap.Float64("mean_settled", util.RoundFloat(float64(util.SumG(settled))/float64(done), 2)),
		zap.Duration("wall", wall))
}

func matchesDijkstra(graph *datastructure.Graph, q query, found bool, cost float64) bool {
	dijkstra := routing.NewDijkstra(graph)
	if err := dijkstra.ShortestPath(q.s, q.alpha); err != nil {
		return false
	}
	if !dijkstra.Reached(q.t) {
		return !found
	}
	want := dijkstra.GetTotalCost(q.t)
	return found && math.Abs(want-cost) <= datastructure.EPS*math.Max(1, want)
}

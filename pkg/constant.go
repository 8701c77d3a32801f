package pkg

import "math"

// number of cost criteria carried by every edge. edge_cost_tags in config must have exactly this many entries.
const COST_DIMENSION = 3

var (
	INF_WEIGHT = math.Inf(1)
)

const (
	UNPACK_CACHE_SIZE     = 1 << 16
	NEAREST_NODE_RADIUS   = 0.05 // km
	NEAREST_NODE_MAX_STEP = 8
)

// default tags, in edge cost order
var DEFAULT_EDGE_COST_TAGS = [COST_DIMENSION]string{"Distance", "Height", "UnsuitDist"}

// initial preference of a new user: only elevation gain matters
var DEFAULT_PREFERENCE = [COST_DIMENSION]float64{0.0, 1.0, 0.0}

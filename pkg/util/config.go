package util

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/prefroute/pkg"
	"github.com/spf13/viper"
)

func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	setDefaults()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// defaults only
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")

	viper.SetDefault("graph_file", "./data/graph.graph")
	viper.SetDefault("users_file", "./data/users.json")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("edge_cost_tags", pkg.DEFAULT_EDGE_COST_TAGS[:])
	viper.SetDefault("default_preference", pkg.DEFAULT_PREFERENCE[:])
	viper.SetDefault("rate_limit", false)
	viper.SetDefault("rate_limit_rps", 20.0)
	viper.SetDefault("rate_limit_burst", 40)
	viper.SetDefault("trust_proxy_headers", false)
	viper.SetDefault("unpack_cache_size", pkg.UNPACK_CACHE_SIZE)
	viper.SetDefault("nearest_node_radius", pkg.NEAREST_NODE_RADIUS)
	viper.SetDefault("stopping_criterion", false)
}

// EdgeCostTags returns the configured cost tags. the tag count must match pkg.COST_DIMENSION.
func EdgeCostTags() ([]string, error) {
	tags := viper.GetStringSlice("edge_cost_tags")
	if len(tags) != pkg.COST_DIMENSION {
		return nil, fmt.Errorf("edge_cost_tags: expected %d tags, got %d", pkg.COST_DIMENSION, len(tags))
	}
	return tags, nil
}

// DefaultPreference returns the configured preference for new users.
func DefaultPreference() ([pkg.COST_DIMENSION]float64, error) {
	var alpha [pkg.COST_DIMENSION]float64
	raw := viper.Get("default_preference")
	vals, ok := toFloatSlice(raw)
	if !ok || len(vals) != pkg.COST_DIMENSION {
		return alpha, fmt.Errorf("default_preference: expected %d numbers", pkg.COST_DIMENSION)
	}
	copy(alpha[:], vals)
	return alpha, nil
}

func toFloatSlice(raw interface{}) ([]float64, bool) {
	switch v := raw.(type) {
	case []float64:
		return v, true
	case []interface{}:
		out := make([]float64, len(v))
		for i, x := range v {
			switch n := x.(type) {
			case float64:
				out[i] = n
			case int:
				out[i] = float64(n)
			case int64:
				out[i] = float64(n)
			default:
				return nil, false
			}
		}
		return out, true
	default:
		return nil, false
	}
}

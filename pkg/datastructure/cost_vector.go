package datastructure

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/prefroute/pkg"
)

// CostVector. per-criterion cost of an edge or a path, in edge_cost_tags order.
type CostVector [pkg.COST_DIMENSION]float64

// Preference. weight vector (alpha) that scalarizes a CostVector.
type Preference [pkg.COST_DIMENSION]float64

func NewCostVector(costs ...float64) CostVector {
	var c CostVector
	copy(c[:], costs)
	return c
}

func NewPreference(alpha ...float64) Preference {
	var p Preference
	copy(p[:], alpha)
	return p
}

// AddCosts componentwise sum of a and b.
func AddCosts(a, b CostVector) CostVector {
	var c CostVector
	for i := 0; i < pkg.COST_DIMENSION; i++ {
		c[i] = a[i] + b[i]
	}
	return c
}

// Scalarize. dot product of costs with alpha, the key the search is ordered by.
func Scalarize(costs CostVector, alpha Preference) float64 {
	total := 0.0
	for i := 0; i < pkg.COST_DIMENSION; i++ {
		total += costs[i] * alpha[i]
	}
	return total
}

func (c CostVector) Validate() error {
	return validateComponents(c[:], "edge cost")
}

func (p Preference) Validate() error {
	return validateComponents(p[:], "preference")
}

// dijkstra under a weighted sum is only optimal for non-negative, finite components.
func validateComponents(vals []float64, what string) error {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s component %d is %v", ErrInvalidCostInput, what, i, v)
		}
	}
	return nil
}

// EqCosts componentwise equality within EPS.
func EqCosts(a, b CostVector) bool {
	for i := 0; i < pkg.COST_DIMENSION; i++ {
		if !Eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

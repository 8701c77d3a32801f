package routing

import (
	"errors"

	da "github.com/lintang-b-s/prefroute/pkg/datastructure"
)

var (
	ErrInvalidNodeId    = errors.New("node id out of range")
	ErrInvalidCostInput = da.ErrInvalidCostInput
)

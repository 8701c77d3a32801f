package routing

import (
	"fmt"

	da "github.com/lintang-b-s/prefroute/pkg/datastructure"
	"github.com/lintang-b-s/prefroute/pkg/util"
)

// retrievePath shortcut edges source->mid from the forward predecessors (walked back, then reversed) followed by
// mid->target from the backward successors, unpacked into original edges.
func (bs *BidirectionalSearch) retrievePath(mid da.Index) ([]da.Index, error) {
	n := len(bs.forwardInfo)

	idPath := make([]da.Index, 0)
	curr := mid
	for steps := 0; bs.forwardInfo[curr].GetParent().isValid(); steps++ {
		if steps > n {
			return nil, fmt.Errorf("forward predecessor chain of vertex %d does not reach source %d", mid, bs.source)
		}
		parent := bs.forwardInfo[curr].GetParent()
		idPath = append(idPath, parent.getEdge())
		curr = parent.getVertex()
	}
	util.AssertPanic(curr == bs.source, "forward predecessor chain must end at the source")

	idPath = util.ReverseG(idPath)

	curr = mid
	for steps := 0; bs.backwardInfo[curr].GetParent().isValid(); steps++ {
		if steps > n {
			return nil, fmt.Errorf("backward successor chain of vertex %d does not reach target %d", mid, bs.target)
		}
		successor := bs.backwardInfo[curr].GetParent()
		idPath = append(idPath, successor.getEdge())
		curr = successor.getVertex()
	}
	util.AssertPanic(curr == bs.target, "backward successor chain must end at the target")

	return bs.graph.UnpackPath(idPath, bs.source)
}

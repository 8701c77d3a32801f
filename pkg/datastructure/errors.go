package datastructure

import "errors"

var (
	ErrInvalidCostInput   = errors.New("invalid cost input")
	ErrUnpackInconsistent = errors.New("inconsistent shortcut replacement table")
	ErrInvalidGraphFile   = errors.New("invalid graph file")
	ErrHeapEmpty          = errors.New("heap is empty")
)

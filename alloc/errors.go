package alloc

import "github.com/pkg/errors"

var (
	ErrTooLarge = errors.New("allocation does not fit in a chunk")
)

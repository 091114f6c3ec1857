package refptr

import (
	"unsafe"

	"github.com/funny-falcon/refptr/alloc"
)

// NewIn allocates a zeroed T from a and wraps it. The last release gives
// the memory back to a. T must not contain Go pointers, since allocator
// memory is invisible to the garbage collector.
//
// WithDeleter still applies; it runs before the memory is returned.
func NewIn[T any](a alloc.Allocator, opts ...Option[T]) *Ptr[T] {
	var zero T
	mem := a.Alloc(int(unsafe.Sizeof(zero)))
	var target *T
	alloc.Get(mem, &target)
	*target = zero

	cfg := newConfig(opts)
	deleter := cfg.deleter
	cfg.deleter = func(t *T) {
		deleter(t)
		a.Dealloc(unsafe.Pointer(t))
	}
	return &Ptr[T]{b: newBlock(target, cfg)}
}

// Package alloc hands out memory for pointer-free targets from mmap'ed
// chunks that the Go garbage collector does not scan.
package alloc

import (
	"unsafe"

	"github.com/modern-go/reflect2"
)

type Allocator interface {
	Alloc(ln int) unsafe.Pointer
	Dealloc(ptr unsafe.Pointer)
}

// Get stores ptr into the pointer variable out points to:
//
//	var acc *Account
//	alloc.Get(p, &acc)
func Get(ptr unsafe.Pointer, out interface{}) {
	*(*unsafe.Pointer)(reflect2.PtrOf(out)) = ptr
}

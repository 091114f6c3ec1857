// Package refptr provides Ptr, a reference counted owner of a single target
// kept in a separate control block.
//
// A control block may be locked (frozen). A frozen block stops counting,
// never deletes its target, and is never shared: asking it for a new owner
// hands out a fresh frozen block over the same target. Locked targets stay
// the responsibility of whoever created them.
//
// Ptr is not safe for concurrent use.
package refptr

import (
	"unsafe"

	"github.com/funny-falcon/refptr/refcount"
)

// noCopy makes go vet complain about Ptr values copied without Clone.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Ptr is a shared owner of a target. The zero value is a null pointer.
// Copy with Clone or Assign, never by value.
type Ptr[T any] struct {
	noCopy noCopy
	b      *block[T]
}

// New wraps target in a fresh control block with a count of one.
// A nil target gives a null pointer.
func New[T any](target *T, opts ...Option[T]) *Ptr[T] {
	p := &Ptr[T]{}
	if target != nil {
		p.b = newBlock(target, newConfig(opts))
	}
	return p
}

// Clone returns a new owner of p's target.
func (p *Ptr[T]) Clone() *Ptr[T] {
	c := &Ptr[T]{}
	if p != nil && p.b != nil {
		c.b = p.b.share()
	}
	return c
}

// Assign makes p an owner of src's target, releasing whatever p held.
// It does nothing when p and src already share a block.
func (p *Ptr[T]) Assign(src *Ptr[T]) {
	var sb *block[T]
	if src != nil {
		sb = src.b
	}
	if p.b != nil && p.b == sb {
		return
	}
	p.Release()
	if sb != nil {
		p.b = sb.share()
	}
}

// Release gives up p's reference and leaves p null. Releasing a null
// pointer is a no-op.
func (p *Ptr[T]) Release() {
	if p == nil || p.b == nil {
		return
	}
	b := p.b
	p.b = nil
	if b.release() == refcount.Sentinel {
		b.releaseFrozen()
	}
}

func (p *Ptr[T]) Get() *T {
	if p == nil || p.b == nil {
		return nil
	}
	return p.b.target
}

func (p *Ptr[T]) IsNull() bool {
	return p.Get() == nil
}

// Less orders pointers by target address.
func (p *Ptr[T]) Less(o *Ptr[T]) bool {
	return uintptr(unsafe.Pointer(p.Get())) < uintptr(unsafe.Pointer(o.Get()))
}

// Equal compares targets by value. Null pointers are equal to each other
// only.
func (p *Ptr[T]) Equal(o *Ptr[T]) bool {
	if p.IsNull() || o.IsNull() {
		return p.IsNull() && o.IsNull()
	}
	return p.b.equal(o.b)
}

// Lock freezes p's control block.
func (p *Ptr[T]) Lock() {
	if p != nil && p.b != nil {
		p.b.lock()
	}
}

func (p *Ptr[T]) IsLocked() bool {
	if p == nil || p.b == nil {
		return false
	}
	p.b.count.Inc()
	return p.b.release() == refcount.Sentinel
}

// UseCount returns the number of owners sharing p's block: 0 for a null
// pointer, refcount.Sentinel for a locked one.
func (p *Ptr[T]) UseCount() uint32 {
	if p == nil || p.b == nil {
		return 0
	}
	return p.b.count.Count()
}

package refptr

import (
	"reflect"

	"github.com/funny-falcon/refptr/refcount"
)

// block is the control block: a count plus the one target it owns.
// A frozen block never deletes its target, see Ptr.Release.
type block[T any] struct {
	count  refcount.Counter
	target *T
	dead   bool
	// owners of a frozen block: the count at lock time, 1 for a clone.
	owners uint32
	cfg    *config[T]
}

func newBlock[T any](target *T, cfg *config[T]) *block[T] {
	cfg.stats.BlockCreated()
	return &block[T]{
		count:  refcount.New(),
		target: target,
		cfg:    cfg,
	}
}

// release drops one reference. The block destroys itself when the count
// reaches zero. Sentinel means nothing was decremented.
func (b *block[T]) release() uint32 {
	n := b.count.Dec()
	if n == 0 {
		b.destroy()
	}
	return n
}

// share returns the block a new owner must hold: b itself, or a fresh
// frozen block over the same target if b is frozen.
func (b *block[T]) share() *block[T] {
	if b.count.Inc() != refcount.Sentinel {
		return b
	}
	nb := &block[T]{
		count:  refcount.New(),
		target: b.target,
		owners: 1,
		cfg:    b.cfg,
	}
	nb.count.Lock()
	b.cfg.stats.BlockCloned()
	b.cfg.log.V(2).Info("frozen block cloned", "target", b.target)
	return nb
}

func (b *block[T]) lock() {
	if !b.count.Frozen() {
		b.owners = b.count.Count()
		b.cfg.stats.Locked()
	}
	b.count.Lock()
}

// releaseFrozen drops one owner of a frozen block. The last owner detaches
// the target and drops the shell.
func (b *block[T]) releaseFrozen() {
	if b.owners > 1 {
		b.owners--
		return
	}
	b.owners = 0
	b.swap(nil)
	b.destroy()
}

func (b *block[T]) swap(target *T) *T {
	old := b.target
	b.target = target
	return old
}

func (b *block[T]) take() *T {
	return b.swap(nil)
}

func (b *block[T]) destroy() {
	if b.dead {
		return
	}
	b.dead = true
	b.cfg.stats.BlockDestroyed()
	target := b.take()
	if target == nil {
		return
	}
	b.cfg.deleter(target)
	b.cfg.stats.TargetDeleted()
	b.cfg.log.V(1).Info("target deleted", "target", target)
}

func (b *block[T]) equal(o *block[T]) bool {
	return equalTargets(b.cfg, b.target, o.target)
}

type equaler[T any] interface {
	Equal(o *T) bool
}

func equalTargets[T any](cfg *config[T], a, o *T) bool {
	if a == nil || o == nil {
		return a == o
	}
	if cfg != nil && cfg.equal != nil {
		return cfg.equal(a, o)
	}
	if eq, ok := any(a).(equaler[T]); ok {
		return eq.Equal(o)
	}
	return reflect.DeepEqual(*a, *o)
}

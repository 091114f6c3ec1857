// Package unknown exposes a refptr.Ptr through the query-interface,
// add-ref, release object lifetime protocol.
package unknown

import (
	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/funny-falcon/refptr"
	"github.com/funny-falcon/refptr/refcount"
	"github.com/funny-falcon/refptr/stats"
)

// IIDUnknown identifies the base protocol every Unknown answers to.
var IIDUnknown = uuid.MustParse("00000000-0000-0000-c000-000000000046")

type Unknown interface {
	// QueryInterface stores an extra reference to the object in out if it
	// supports iid. A destroyed object answers ErrUnexpected.
	QueryInterface(iid uuid.UUID, out *Unknown) HResult
	AddRef() uint32
	Release() uint32
}

type Option func(a *options)

type options struct {
	log   logr.Logger
	stats *stats.Stats
}

func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}

func WithStats(s *stats.Stats) Option {
	return func(o *options) { o.stats = s }
}

// Adapter owns a clone of a refptr.Ptr and counts its own references,
// starting at one. The clone is released when that count reaches zero.
type Adapter[T any] struct {
	count refcount.Counter
	ptr   *refptr.Ptr[T]
	opts  options
}

var _ Unknown = (*Adapter[struct{}])(nil)

func New[T any](src *refptr.Ptr[T], opts ...Option) *Adapter[T] {
	a := &Adapter[T]{
		count: refcount.New(),
		ptr:   src.Clone(),
		opts:  options{log: logr.Discard()},
	}
	for _, opt := range opts {
		opt(&a.opts)
	}
	a.opts.stats.AdapterCreated()
	return a
}

// Ptr returns a new owner of the wrapped target, or a null pointer once the
// adapter is destroyed.
func (a *Adapter[T]) Ptr() *refptr.Ptr[T] {
	return a.ptr.Clone()
}

func (a *Adapter[T]) QueryInterface(iid uuid.UUID, out *Unknown) HResult {
	if out == nil {
		return ErrPointer
	}
	if a.ptr == nil {
		*out = nil
		return ErrUnexpected
	}
	if iid == IIDUnknown {
		*out = a
		a.AddRef()
		return OK
	}
	*out = nil
	return ErrNoInterface
}

// AddRef returns the count before the increment.
func (a *Adapter[T]) AddRef() uint32 {
	if a.ptr == nil {
		return 0
	}
	return a.count.Inc()
}

// Release returns the count after the decrement and destroys the adapter
// when it reaches zero.
func (a *Adapter[T]) Release() uint32 {
	if a.ptr == nil {
		return 0
	}
	n := a.count.Dec()
	if n == 0 {
		a.destroy()
	}
	return n
}

func (a *Adapter[T]) destroy() {
	a.ptr.Release()
	a.ptr = nil
	a.opts.stats.AdapterDestroyed()
	a.opts.log.V(1).Info("adapter destroyed")
}

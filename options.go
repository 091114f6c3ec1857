package refptr

import (
	"github.com/go-logr/logr"

	"github.com/funny-falcon/refptr/stats"
)

// Deleter disposes of a target once its last shared owner is gone.
type Deleter[T any] func(target *T)

type Option[T any] func(c *config[T])

// config is shared by a block and every block cloned from it.
type config[T any] struct {
	deleter Deleter[T]
	equal   func(a, b *T) bool
	log     logr.Logger
	stats   *stats.Stats
}

func newConfig[T any](opts []Option[T]) *config[T] {
	c := &config[T]{
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.deleter == nil {
		c.deleter = c.defaultDeleter
	}
	return c
}

func WithDeleter[T any](d Deleter[T]) Option[T] {
	return func(c *config[T]) { c.deleter = d }
}

// WithEqual replaces value comparison of targets.
func WithEqual[T any](eq func(a, b *T) bool) Option[T] {
	return func(c *config[T]) { c.equal = eq }
}

func WithLogger[T any](log logr.Logger) Option[T] {
	return func(c *config[T]) { c.log = log }
}

func WithStats[T any](s *stats.Stats) Option[T] {
	return func(c *config[T]) { c.stats = s }
}

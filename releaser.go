package refptr

import (
	"io"

	"github.com/pkg/errors"
)

type Releaser interface {
	Release()
}

func (c *config[T]) defaultDeleter(target *T) {
	switch t := any(target).(type) {
	case Releaser:
		t.Release()
	case io.Closer:
		if err := t.Close(); err != nil {
			c.log.Error(errors.Wrapf(err, "closing %T", target), "target close failed")
		}
	}
}

// ReleaseHolder releases everything added to it at once.
// A nil holder ignores Add and Release.
type ReleaseHolder struct {
	R []Releaser
}

func (r *ReleaseHolder) Add(rr Releaser) {
	if r == nil {
		return
	}
	r.R = append(r.R, rr)
}

func (r *ReleaseHolder) Release() {
	if r == nil {
		return
	}
	for i := len(r.R) - 1; i >= 0; i-- {
		r.R[i].Release()
	}
	r.R = nil
}

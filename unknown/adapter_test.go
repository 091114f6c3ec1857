package unknown_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/refptr"
	"github.com/funny-falcon/refptr/stats"
	"github.com/funny-falcon/refptr/unknown"
)

type doc struct {
	title   string
	deleted int
}

func (d *doc) Release() { d.deleted++ }

func TestAdapter_releaseTwice(t *testing.T) {
	var s stats.Stats
	d := &doc{title: "x"}
	p := refptr.New(d, refptr.WithStats[doc](&s))
	a := unknown.New(p, unknown.WithStats(&s))
	assert.Equal(t, uint32(2), p.UseCount())

	// The source pointer goes away; the adapter keeps the target alive.
	p.Release()
	assert.Equal(t, 0, d.deleted)

	assert.Equal(t, uint32(1), a.AddRef())
	assert.Equal(t, uint32(1), a.Release())
	assert.Equal(t, 0, d.deleted)
	assert.Equal(t, int64(1), s.Snapshot().LiveAdapters)

	assert.Equal(t, uint32(0), a.Release())
	assert.Equal(t, 1, d.deleted)
	sn := s.Snapshot()
	assert.Equal(t, int64(0), sn.LiveAdapters)
	assert.Equal(t, int64(0), sn.LiveBlocks)

	assert.Equal(t, uint32(0), a.Release())
	assert.Equal(t, uint32(0), a.AddRef())
	assert.Equal(t, 1, d.deleted)
	assert.True(t, a.Ptr().IsNull())

	var out unknown.Unknown = a
	hr := a.QueryInterface(unknown.IIDUnknown, &out)
	assert.Equal(t, unknown.ErrUnexpected, hr)
	assert.True(t, hr.Failed())
	assert.Nil(t, out)
	assert.Equal(t, uint32(0), a.AddRef())
}

func TestAdapter_countIndependentOfPtr(t *testing.T) {
	d := &doc{title: "x"}
	p := refptr.New(d)
	a := unknown.New(p)
	for i := 0; i < 3; i++ {
		a.AddRef()
	}
	assert.Equal(t, uint32(2), p.UseCount())

	q := a.Ptr()
	assert.Same(t, d, q.Get())
	assert.Equal(t, uint32(3), p.UseCount())
	q.Release()

	for i := 0; i < 4; i++ {
		a.Release()
	}
	assert.Equal(t, uint32(1), p.UseCount())
	p.Release()
	assert.Equal(t, 1, d.deleted)
}

func TestAdapter_queryInterface(t *testing.T) {
	d := &doc{title: "x"}
	p := refptr.New(d)
	a := unknown.New(p)
	p.Release()

	var out unknown.Unknown
	hr := a.QueryInterface(unknown.IIDUnknown, &out)
	require.Equal(t, unknown.OK, hr)
	assert.True(t, hr.Succeeded())
	assert.Same(t, a, out)

	// The query took a reference, so two releases are needed.
	assert.Equal(t, uint32(1), out.Release())
	assert.Equal(t, 0, d.deleted)

	other := uuid.MustParse("6d5140c1-7436-11ce-8034-00aa006009fa")
	out = a
	hr = a.QueryInterface(other, &out)
	assert.Equal(t, unknown.ErrNoInterface, hr)
	assert.True(t, hr.Failed())
	assert.Nil(t, out)
	assert.EqualError(t, hr, "no such interface supported")

	hr = a.QueryInterface(unknown.IIDUnknown, nil)
	assert.Equal(t, unknown.ErrPointer, hr)

	assert.Equal(t, uint32(0), a.Release())
	assert.Equal(t, 1, d.deleted)
}

func TestAdapter_lockedPtr(t *testing.T) {
	d := &doc{title: "x"}
	l := refptr.NewLocked(d)
	a := unknown.New(l)
	assert.True(t, a.Ptr().IsLocked())
	a.Release()
	l.Release()
	assert.Equal(t, 0, d.deleted)
}

func TestHResult_error(t *testing.T) {
	assert.Equal(t, "ok", unknown.OK.Error())
	assert.Equal(t, "invalid output pointer", unknown.ErrPointer.Error())
	assert.Equal(t, "hresult 0x80004005", unknown.HResult(0x80004005).Error())
}

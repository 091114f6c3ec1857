package refcount_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/funny-falcon/refptr/refcount"
)

func TestCounter_incDec(t *testing.T) {
	c := refcount.New()
	assert.Equal(t, uint32(1), c.Count())
	assert.Equal(t, uint32(1), c.Inc())
	assert.Equal(t, uint32(2), c.Inc())
	assert.Equal(t, uint32(3), c.Count())
	assert.Equal(t, uint32(2), c.Dec())
	assert.Equal(t, uint32(1), c.Dec())
	assert.Equal(t, uint32(0), c.Dec())
	assert.Equal(t, uint32(0), c.Dec())
	assert.False(t, c.Frozen())
}

func TestCounter_lock(t *testing.T) {
	c := refcount.New()
	c.Inc()
	c.Lock()
	assert.True(t, c.Frozen())
	assert.Equal(t, refcount.Sentinel, c.Count())
	for i := 0; i < 3; i++ {
		assert.Equal(t, refcount.Sentinel, c.Inc())
		assert.Equal(t, refcount.Sentinel, c.Dec())
	}
	assert.Equal(t, refcount.Sentinel, c.Count())
	assert.True(t, c.Frozen())
}

func TestCounter_saturates(t *testing.T) {
	c := refcount.New()
	c.Lock()
	// A frozen counter reports the sentinel even though it was never
	// incremented up to it.
	assert.Equal(t, refcount.Sentinel, c.Inc())

	var z refcount.Counter
	assert.Equal(t, uint32(0), z.Count())
	assert.Equal(t, uint32(0), z.Inc())
	assert.Equal(t, uint32(0), z.Dec())
}

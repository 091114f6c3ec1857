// Package refcount holds the plain, non-atomic reference counter shared by
// refptr control blocks and the unknown adapter.
package refcount

// Sentinel is reported by Inc and Dec once a counter is frozen.
const Sentinel = ^uint32(0)

type state uint8

const (
	shared state = iota
	frozen
)

// Counter is a reference count that starts at one owner.
// A frozen counter never changes again.
// Counter is not safe for concurrent use.
type Counter struct {
	n     uint32
	state state
}

func New() Counter {
	return Counter{n: 1}
}

// Inc returns the count before incrementing, or Sentinel if frozen.
func (c *Counter) Inc() uint32 {
	if c.state == frozen {
		return Sentinel
	}
	n := c.n
	if n+1 == Sentinel {
		c.Lock()
		return n
	}
	c.n++
	return n
}

// Dec returns the count after decrementing, or Sentinel if frozen.
func (c *Counter) Dec() uint32 {
	if c.state == frozen {
		return Sentinel
	}
	if c.n == 0 {
		return 0
	}
	c.n--
	return c.n
}

// Lock freezes the counter. It is irreversible.
func (c *Counter) Lock() {
	c.state = frozen
	c.n = Sentinel
}

func (c *Counter) Frozen() bool {
	return c.state == frozen
}

func (c *Counter) Count() uint32 {
	return c.n
}

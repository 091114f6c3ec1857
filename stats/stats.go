// Package stats counts control block and adapter lifecycle events.
package stats

import (
	"sync/atomic"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
)

// Stats is safe to read while pointers are being released on another
// goroutine. A nil *Stats ignores every event.
type Stats struct {
	blocksCreated     atomic.Int64
	blocksDestroyed   atomic.Int64
	blocksCloned      atomic.Int64
	targetsDeleted    atomic.Int64
	locks             atomic.Int64
	adaptersCreated   atomic.Int64
	adaptersDestroyed atomic.Int64
}

type Snapshot struct {
	BlocksCreated     int64 `json:"blocks_created"`
	BlocksDestroyed   int64 `json:"blocks_destroyed"`
	BlocksCloned      int64 `json:"blocks_cloned"`
	TargetsDeleted    int64 `json:"targets_deleted"`
	Locks             int64 `json:"locks"`
	AdaptersCreated   int64 `json:"adapters_created"`
	AdaptersDestroyed int64 `json:"adapters_destroyed"`
	LiveBlocks        int64 `json:"live_blocks"`
	LiveAdapters      int64 `json:"live_adapters"`
}

func (s *Stats) BlockCreated() {
	if s != nil {
		s.blocksCreated.Add(1)
	}
}

func (s *Stats) BlockDestroyed() {
	if s != nil {
		s.blocksDestroyed.Add(1)
	}
}

// BlockCloned counts a frozen block handed out as a fresh block.
// The fresh block is also counted as created.
func (s *Stats) BlockCloned() {
	if s != nil {
		s.blocksCloned.Add(1)
		s.blocksCreated.Add(1)
	}
}

func (s *Stats) TargetDeleted() {
	if s != nil {
		s.targetsDeleted.Add(1)
	}
}

func (s *Stats) Locked() {
	if s != nil {
		s.locks.Add(1)
	}
}

func (s *Stats) AdapterCreated() {
	if s != nil {
		s.adaptersCreated.Add(1)
	}
}

func (s *Stats) AdapterDestroyed() {
	if s != nil {
		s.adaptersDestroyed.Add(1)
	}
}

func (s *Stats) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	sn := Snapshot{
		BlocksCreated:     s.blocksCreated.Load(),
		BlocksDestroyed:   s.blocksDestroyed.Load(),
		BlocksCloned:      s.blocksCloned.Load(),
		TargetsDeleted:    s.targetsDeleted.Load(),
		Locks:             s.locks.Load(),
		AdaptersCreated:   s.adaptersCreated.Load(),
		AdaptersDestroyed: s.adaptersDestroyed.Load(),
	}
	sn.LiveBlocks = sn.BlocksCreated - sn.BlocksDestroyed
	sn.LiveAdapters = sn.AdaptersCreated - sn.AdaptersDestroyed
	return sn
}

// Live returns the number of control blocks not yet destroyed.
func (s *Stats) Live() int64 {
	return s.Snapshot().LiveBlocks
}

var json = jsoniter.ConfigFastest

var applicationJSON = []byte("application/json")

// Handler serves the current snapshot as JSON.
func Handler(s *Stats) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if !ctx.IsGet() {
			ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
			return
		}
		stream := json.BorrowStream(ctx)
		stream.WriteVal(s.Snapshot())
		stream.WriteRaw("\n")
		ctx.Response.Header.SetContentTypeBytes(applicationJSON)
		if err := stream.Flush(); err != nil {
			ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		}
		json.ReturnStream(stream)
	}
}

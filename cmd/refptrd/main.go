//go:build linux

package main

import (
	"flag"
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/valyala/fasthttp"

	"github.com/funny-falcon/refptr"
	"github.com/funny-falcon/refptr/alloc"
	"github.com/funny-falcon/refptr/stats"
	"github.com/funny-falcon/refptr/unknown"
)

var port = flag.String("port", "8080", "port to listen")
var objects = flag.Int("objects", 100000, "number of objects to load")
var verbosity = flag.Int("v", 0, "log verbosity")
var onlyload = flag.Bool("onlyload", false, "only load")

type Account struct {
	ID     int64
	Joined int64
	Likes  [8]int32
}

var Stats stats.Stats

func main() {
	log.SetFlags(log.Lmicroseconds | log.Lshortfile)
	flag.Parse()
	logger := funcr.New(func(prefix, args string) {
		log.Println(prefix, args)
	}, funcr.Options{Verbosity: *verbosity})

	Load(logger)
	sn := Stats.Snapshot()
	log.Printf("blocks created %d destroyed %d cloned %d, targets deleted %d",
		sn.BlocksCreated, sn.BlocksDestroyed, sn.BlocksCloned, sn.TargetsDeleted)

	if *onlyload {
		return
	}

	err := fasthttp.ListenAndServe(":"+*port, stats.Handler(&Stats))
	if err != nil {
		log.Fatal(err)
	}
}

// Load churns through shared, locked and adapted accounts held in off-heap
// memory and releases all of them except one locked placeholder.
func Load(logger logr.Logger) {
	var heap alloc.Simple
	heap.Log = logger.WithName("alloc")
	opts := []refptr.Option[Account]{
		refptr.WithStats[Account](&Stats),
		refptr.WithLogger[Account](logger.WithName("refptr")),
	}

	var holder refptr.ReleaseHolder
	for i := 0; i < *objects; i++ {
		p := refptr.NewIn(&heap, opts...)
		p.Get().ID = int64(i)
		holder.Add(p)
		holder.Add(p.Clone())
		if i%16 == 0 {
			a := unknown.New(p, unknown.WithStats(&Stats))
			a.Release()
		}
	}
	log.Printf("allocated %d bytes in %d chunks", heap.TotalAlloc, heap.Chunks)
	holder.Release()

	placeholder := refptr.NewLocked(&Account{ID: -1}, opts...)
	for i := 0; i < 4; i++ {
		placeholder.Clone().Release()
	}

	if err := heap.FreeFree(); err != nil {
		log.Fatal(err)
	}
	log.Printf("after release %d bytes allocated, %d chunks left, placeholder %d locked %v",
		heap.TotalAlloc, heap.Chunks, placeholder.Get().ID, placeholder.IsLocked())
}

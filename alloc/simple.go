//go:build linux

package alloc

import (
	"sync"
	"unsafe"

	"github.com/go-logr/logr"
)

// Every chunk starts with a header word counting its free bytes; every
// allocation is preceded by a header word holding its size.
const headerSize = 8

// Simple is a bump allocator over chunks. A chunk goes back to the free
// list once everything allocated in it has been deallocated.
type Simple struct {
	sync.Mutex
	Gen        ChunkGen
	Cur        chunk
	Free       []chunk
	Chunks     int
	TotalFree  int
	TotalAlloc int
	Log        logr.Logger
}

type chunk struct {
	chunk uintptr
	off   uintptr
	free  *int
}

// Alloc panics with ErrTooLarge or the mmap error, like running out of
// memory would.
func (s *Simple) Alloc(ln int) unsafe.Pointer {
	s.Lock()
	defer s.Unlock()
	return s.alloc(ln)
}

func (s *Simple) alloc(ln int) unsafe.Pointer {
	n := headerSize + (ln+7)&^7
	if n > ChunkSize-headerSize {
		panic(ErrTooLarge)
	}
	if s.Cur.free == nil || int(s.Cur.off)+n > ChunkSize {
		s.nextChunk()
	}
	*(*int)(unsafe.Pointer(s.Cur.chunk + s.Cur.off)) = n
	res := s.Cur.chunk + s.Cur.off + headerSize
	s.Cur.off += uintptr(n)
	*s.Cur.free -= n
	s.TotalAlloc += n
	s.TotalFree -= n
	s.Log.V(3).Info("alloc", "ptr", res, "size", n)
	return unsafe.Pointer(res)
}

func (s *Simple) nextChunk() {
	if s.Cur.free != nil {
		// The tail of the abandoned chunk is already counted as free;
		// adding the header makes a fully released chunk read ChunkSize.
		*s.Cur.free += headerSize
		if *s.Cur.free == ChunkSize {
			s.Free = append(s.Free, s.Cur)
		}
	}
	if len(s.Free) > 0 {
		s.Cur = s.Free[len(s.Free)-1]
		s.Free = s.Free[:len(s.Free)-1]
		s.Cur.off = headerSize
		*s.Cur.free = ChunkSize - headerSize
		return
	}
	c, err := s.Gen.Gen()
	if err != nil {
		panic(err)
	}
	s.Chunks++
	s.Cur.chunk = uintptr(unsafe.Pointer(c))
	s.Cur.off = headerSize
	s.Cur.free = (*int)(unsafe.Pointer(c))
	*s.Cur.free = ChunkSize - headerSize
	s.TotalFree += ChunkSize - headerSize
	s.Log.V(2).Info("chunk", "ptr", s.Cur.chunk)
}

func (s *Simple) Dealloc(ptr unsafe.Pointer) {
	s.Lock()
	defer s.Unlock()
	s.dealloc(ptr)
}

func (s *Simple) dealloc(ptr unsafe.Pointer) {
	up := uintptr(ptr)
	sz := *(*int)(unsafe.Pointer(up - headerSize))
	s.TotalFree += sz
	s.TotalAlloc -= sz
	chunkp := up &^ ChunkMask
	freep := (*int)(unsafe.Pointer(chunkp))
	*freep += sz
	s.Log.V(3).Info("dealloc", "ptr", up, "size", sz)
	if *freep == ChunkSize {
		s.Free = append(s.Free, chunk{
			chunk: chunkp,
			off:   headerSize,
			free:  freep,
		})
	}
}

// ChunkSpace returns the free byte count of the chunk holding ptr.
func (s *Simple) ChunkSpace(ptr unsafe.Pointer) int {
	s.Lock()
	defer s.Unlock()
	return *(*int)(unsafe.Pointer(uintptr(ptr) &^ ChunkMask))
}

// FreeFree returns fully released chunks to the operating system.
func (s *Simple) FreeFree() error {
	s.Lock()
	defer s.Unlock()
	for i, free := range s.Free {
		if err := unmapChunk((*Chunk)(unsafe.Pointer(free.chunk))); err != nil {
			s.Free = s.Free[i:]
			return err
		}
		s.Chunks--
		s.TotalFree -= ChunkSize - headerSize
	}
	s.Free = nil
	return nil
}

//go:build linux

package alloc

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const SlabSize = 1 << 24
const ChunkSizeShift = 18
const ChunkSize = 1 << ChunkSizeShift
const ChunkMask = ChunkSize - 1

type Chunk [ChunkSize]byte

// ChunkGen cuts ChunkSize aligned chunks out of anonymous mmap'ed slabs.
type ChunkGen struct {
	CurSlab []byte
}

func (g *ChunkGen) Gen() (*Chunk, error) {
	if len(g.CurSlab) == 0 {
		slab, err := unix.Mmap(-1, 0, SlabSize+ChunkSize, unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
		if err != nil {
			return nil, err
		}
		skip := (ChunkSize - uintptr(unsafe.Pointer(&slab[0]))&ChunkMask) & ChunkMask
		g.CurSlab = slab[skip : skip+SlabSize]
	}
	res := (*Chunk)(unsafe.Pointer(&g.CurSlab[0]))
	g.CurSlab = g.CurSlab[ChunkSize:]
	return res, nil
}

func unmapChunk(c *Chunk) error {
	return unix.MunmapPtr(unsafe.Pointer(c), ChunkSize)
}

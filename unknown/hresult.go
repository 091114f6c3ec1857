package unknown

import "fmt"

// HResult is the result code of QueryInterface.
type HResult uint32

const (
	OK             HResult = 0
	ErrNoInterface HResult = 0x80004002
	ErrPointer     HResult = 0x80004003
	ErrUnexpected  HResult = 0x8000ffff
)

func (h HResult) Succeeded() bool { return h&0x80000000 == 0 }
func (h HResult) Failed() bool    { return !h.Succeeded() }

func (h HResult) Error() string {
	switch h {
	case OK:
		return "ok"
	case ErrNoInterface:
		return "no such interface supported"
	case ErrPointer:
		return "invalid output pointer"
	case ErrUnexpected:
		return "object already destroyed"
	}
	return fmt.Sprintf("hresult 0x%08x", uint32(h))
}

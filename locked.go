package refptr

// NewLocked wraps target in a control block that is frozen from the start.
// The returned pointer never deletes target, and neither does any clone.
func NewLocked[T any](target *T, opts ...Option[T]) *Ptr[T] {
	p := New(target, opts...)
	p.Lock()
	return p
}

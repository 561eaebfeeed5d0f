package refcount

// Shared is an owning handle. Each live Shared accounts for exactly one
// reference on its object.
type Shared[T Object] struct {
	obj  T
	live bool
}

// Own takes a reference on obj and returns the owning handle. Use it on the
// result of a constructor.
func Own[T Object](obj T) *Shared[T] {
	Incref(obj)
	return &Shared[T]{obj: obj, live: true}
}

// Get returns the object. The result is borrowed from the handle.
func (s *Shared[T]) Get() T {
	return s.obj
}

// Valid reports whether the handle still holds its reference.
func (s *Shared[T]) Valid() bool {
	return s != nil && s.live
}

// Clone returns a second owning handle on the same object.
func (s *Shared[T]) Clone() *Shared[T] {
	return Own(s.obj)
}

// Borrow returns an observer that does not keep the object alive.
func (s *Shared[T]) Borrow() Ref[T] {
	return Ref[T]{obj: s.obj}
}

// Release drops the handle's reference. Releasing twice through the same
// handle is a no-op; the handle is empty afterwards.
func (s *Shared[T]) Release() {
	if !s.Valid() {
		return
	}
	obj := s.obj
	var zero T
	s.obj = zero
	s.live = false
	Decref(obj)
}

// Ref is a non-owning observer. It is valid only while some owner keeps
// the object alive.
type Ref[T Object] struct {
	obj T
}

// Get returns the observed object.
func (r Ref[T]) Get() T {
	return r.obj
}

// Acquire upgrades the observer to an owning handle.
func (r Ref[T]) Acquire() *Shared[T] {
	return Own(r.obj)
}

package refcount

// DefaultName is returned by ObjectName for types that do not override it.
const DefaultName = "TACSObject"

// Object is implemented by every type that embeds Base.
type Object interface {
	// RefCount returns the current count. Diagnostic only.
	RefCount() int

	// ObjectName returns a human-readable name for logs.
	ObjectName() string

	incref()
	decref() int
}

// Destroyer is implemented by objects that hold resources of their own.
// Destroy runs once, when the last reference is released.
type Destroyer interface {
	Destroy()
}

// Base carries the reference count. Embed it to make a type an Object.
//
// The zero value is ready to use and has count zero.
type Base struct {
	refs int
}

// RefCount returns the current count.
func (b *Base) RefCount() int {
	return b.refs
}

// ObjectName returns DefaultName. Embedders override it.
func (b *Base) ObjectName() string {
	return DefaultName
}

func (b *Base) incref() {
	b.refs++
}

func (b *Base) decref() int {
	b.refs--
	return b.refs
}

// Incref adds one reference to obj.
func Incref(obj Object) {
	obj.incref()
}

// Decref drops one reference from obj and destroys it when the count
// reaches zero. It reports whether obj was destroyed; callers must treat
// their reference as invalid either way.
func Decref(obj Object) bool {
	if obj.decref() > 0 {
		return false
	}
	if d, ok := obj.(Destroyer); ok {
		d.Destroy()
	}
	return true
}

// Package refcount provides the shared-ownership base for heavy numerical
// objects (meshes, matrices, elements) that are referenced from several
// owners without copying.
//
// # Ownership Discipline
//
// The discipline holds across the whole toolkit:
//
//   - A value returned from a constructor is OWNED. The receiver must
//     eventually release it.
//   - A value returned from any other function is BORROWED. The receiver
//     must not release it.
//   - Passing a value as an argument has no ownership effect. A callee that
//     keeps the value past the call acquires its own reference.
//
// Shared and Ref make the two kinds explicit: Shared is an owning handle
// whose Clone and Release perform the count updates, Ref is an observer
// that never touches the count.
//
// # Counting
//
// A freshly constructed object starts at count zero. The first Incref (or
// Own) makes the caller its owner. When Decref brings the count to zero or
// below the object's Destroy hook runs and the object must not be touched
// again by anyone.
//
// Counts are not synchronized. Callers that share one object between
// goroutines must serialize Incref/Decref themselves or give each worker
// disjoint objects. Decrementing a destroyed object is a programming error
// and is not detected.
package refcount

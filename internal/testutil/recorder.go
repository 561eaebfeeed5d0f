package testutil

// Recorder logs object destructions in order.
//
// Hand Recorder.Destroyed to a fixture's OnDestroy hook and inspect Events
// to assert that every object was torn down exactly once.
type Recorder struct {
	Events []string
}

// Destroyed records name.
func (r *Recorder) Destroyed(name string) {
	r.Events = append(r.Events, name)
}

// Count returns how many times name was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, e := range r.Events {
		if e == name {
			n++
		}
	}
	return n
}

package flops

// Counter accumulates an operation count.
type Counter struct {
	total float64
}

// Reset zeros the count.
func (c *Counter) Reset() {
	if c != nil {
		c.total = 0
	}
}

// Add increases the count by n. A nil Counter ignores the call.
func (c *Counter) Add(n float64) {
	if Enabled && c != nil {
		c.total += n
	}
}

// Total returns the accumulated count.
func (c *Counter) Total() float64 {
	if c == nil {
		return 0
	}
	return c.total
}

package engine

import "sync"

// ============================================================================
// COUNTER — Certified applications per value of one feature
// ============================================================================
// One Counter per feature, shared by every file of a run. Record is safe for
// concurrent use so files can be ingested in parallel without lost updates.
// ============================================================================

// Counter accumulates certified counts for the values of one feature.
type Counter struct {
	feature string

	mu     sync.Mutex
	counts map[string]int
	total  int
}

// NewCounter creates an empty counter for a feature.
func NewCounter(feature string) *Counter {
	return &Counter{
		feature: feature,
		counts:  make(map[string]int),
	}
}

// Feature returns the feature name the counter belongs to.
func (c *Counter) Feature() string { return c.feature }

// Record counts one certified application with the given value.
// Empty values are ignored and do not contribute to the total.
func (c *Counter) Record(value string) {
	if value == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++
	if n, ok := c.counts[value]; ok {
		c.counts[value] = n + 1
	} else {
		c.counts[value] = 1
	}
}

// Total returns the number of certified applications recorded.
func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Count returns the count for one value (0 if never seen).
func (c *Counter) Count(value string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[value]
}

// Len returns the number of distinct values.
func (c *Counter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.counts)
}

// Entries returns a snapshot of all value counts in no particular order.
func (c *Counter) Entries() []ValueCount {
	out, _ := c.snapshot()
	return out
}

// snapshot returns entries and total under a single lock so a report never
// mixes counts from different moments.
func (c *Counter) snapshot() ([]ValueCount, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ValueCount, 0, len(c.counts))
	for v, n := range c.counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	return out, c.total
}

package engine

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterRecord(t *testing.T) {
	c := NewCounter("STATES")
	for _, v := range []string{"CA", "TX", "CA", "", "CA", "NY", ""} {
		c.Record(v)
	}

	assert.Equal(t, "STATES", c.Feature())
	assert.Equal(t, 5, c.Total())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 3, c.Count("CA"))
	assert.Equal(t, 1, c.Count("TX"))
	assert.Equal(t, 0, c.Count(""))
	assert.Equal(t, 0, c.Count("FL"))
	assert.ElementsMatch(t, []ValueCount{
		{Value: "CA", Count: 3},
		{Value: "TX", Count: 1},
		{Value: "NY", Count: 1},
	}, c.Entries())
}

func TestCounterTotalEqualsSumOfCounts(t *testing.T) {
	c := NewCounter("OCCUPATIONS")
	for i := 0; i < 250; i++ {
		c.Record(fmt.Sprintf("occ-%d", i%17))
	}
	sum := 0
	for _, e := range c.Entries() {
		assert.GreaterOrEqual(t, e.Count, 1)
		sum += e.Count
	}
	assert.Equal(t, c.Total(), sum)
	assert.Equal(t, 250, sum)
}

func TestCounterConcurrentRecord(t *testing.T) {
	c := NewCounter("STATES")
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				c.Record("CA")
				c.Record(fmt.Sprintf("S%d", i%10))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 16000, c.Total())
	assert.Equal(t, 8000, c.Count("CA"))
	assert.Equal(t, 800, c.Count("S3"))
}

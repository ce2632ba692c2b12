package engine

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// RANKING TESTS
// ============================================================================

func counterOf(feature string, counts map[string]int) *Counter {
	c := NewCounter(feature)
	for v, n := range counts {
		for i := 0; i < n; i++ {
			c.Record(v)
		}
	}
	return c
}

func TestRankTieBreaksLexicographically(t *testing.T) {
	c := counterOf("STATES", map[string]int{"Texas": 3, "Ohio": 3, "California": 5, "Alaska": 1})

	ranked := Rank(c, 10)
	require.Len(t, ranked, 4)
	assert.Equal(t, []string{"California", "Ohio", "Texas", "Alaska"}, values(ranked))
	assert.Equal(t, []int{5, 3, 3, 1}, counts(ranked))
}

func TestRankFewerValuesThanK(t *testing.T) {
	c := counterOf("STATES", map[string]int{"CA": 4, "TX": 3, "NY": 2, "FL": 1})
	ranked := Rank(c, 10)
	assert.Len(t, ranked, 4)
}

func TestRankTruncatesToK(t *testing.T) {
	c := counterOf("STATES", map[string]int{"CA": 4, "TX": 3, "NY": 2, "FL": 1})
	ranked := Rank(c, 2)
	assert.Equal(t, []string{"CA", "TX"}, values(ranked))
}

func TestRankZeroK(t *testing.T) {
	c := counterOf("STATES", map[string]int{"CA": 4})
	assert.Empty(t, Rank(c, 0))
	assert.Empty(t, Rank(c, -3))
}

func TestRankEmptyCounter(t *testing.T) {
	ranked := Rank(NewCounter("STATES"), 10)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRankPercentages(t *testing.T) {
	c := counterOf("OCCUPATIONS", map[string]int{"A": 1, "B": 1, "C": 1})
	for _, e := range Rank(c, 10) {
		assert.Equal(t, 33.3, e.Percentage)
	}

	c = counterOf("OCCUPATIONS", map[string]int{"Engineer": 2})
	ranked := Rank(c, 10)
	require.Len(t, ranked, 1)
	assert.Equal(t, RankedEntry{Value: "Engineer", Count: 2, Percentage: 100}, ranked[0])
}

func TestRankingInvariantHolds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := NewCounter("STATES")
	for i := 0; i < 5000; i++ {
		c.Record(fmt.Sprintf("V%02d", rng.Intn(60)))
	}

	ranked := Rank(c, 25)
	require.Len(t, ranked, 25)
	for i := 1; i < len(ranked); i++ {
		a, b := ranked[i-1], ranked[i]
		ok := a.Count > b.Count || (a.Count == b.Count && a.Value <= b.Value)
		assert.Truef(t, ok, "entries %d and %d out of order: %+v, %+v", i-1, i, a, b)
	}
	for _, e := range ranked {
		assert.GreaterOrEqual(t, e.Percentage, 0.0)
		assert.LessOrEqual(t, e.Percentage, 100.0)
		assert.Equal(t, Percentage(e.Count, c.Total()), e.Percentage)
	}
}

func TestRankIgnoresInsertionOrder(t *testing.T) {
	a := NewCounter("X")
	b := NewCounter("X")
	for _, v := range []string{"b", "a", "c", "a", "b", "c"} {
		a.Record(v)
	}
	for _, v := range []string{"c", "c", "b", "a", "b", "a"} {
		b.Record(v)
	}
	assert.Equal(t, Rank(a, 3), Rank(b, 3))
	assert.Equal(t, []string{"a", "b", "c"}, values(Rank(a, 3)))
}

func TestCompareValueCounts(t *testing.T) {
	assert.Negative(t, CompareValueCounts(ValueCount{"Z", 5}, ValueCount{"A", 4}))
	assert.Positive(t, CompareValueCounts(ValueCount{"A", 4}, ValueCount{"Z", 5}))
	assert.Negative(t, CompareValueCounts(ValueCount{"Ohio", 3}, ValueCount{"Texas", 3}))
	assert.Zero(t, CompareValueCounts(ValueCount{"Ohio", 3}, ValueCount{"Ohio", 3}))
	// byte-wise: upper case sorts before lower case
	assert.Negative(t, CompareValueCounts(ValueCount{"Zeta", 1}, ValueCount{"alpha", 1}))
}

// ============================================================================
// PERCENTAGE TESTS
// ============================================================================

func TestPercentage(t *testing.T) {
	tests := []struct {
		count, total int
		want         float64
	}{
		{2, 2, 100.0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{1, 8, 12.5},
		{1, 400, 0.2}, // 0.25 is exact: half goes to even
		{3, 400, 0.8}, // 0.75 is exact: half goes to even
		{1, 7, 14.3},
		{0, 5, 0.0},
		{5, 0, NoPercentage},
		{1, -1, NoPercentage},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.count, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, Percentage(tt.count, tt.total))
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "100.0", FormatPercentage(100))
	assert.Equal(t, "33.3", FormatPercentage(33.3))
	assert.Equal(t, "0.0", FormatPercentage(0))
	assert.Equal(t, "-1", FormatPercentage(NoPercentage))
}

func TestRankEntriesWithZeroTotalUsesSentinel(t *testing.T) {
	ranked := rankEntries([]ValueCount{{"A", 2}, {"B", 1}}, 0, 10)
	require.Len(t, ranked, 2)
	for _, e := range ranked {
		assert.Equal(t, NoPercentage, e.Percentage)
	}
}

func values(entries []RankedEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Value
	}
	return out
}

func counts(entries []RankedEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Count
	}
	return out
}

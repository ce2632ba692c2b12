package engine

import (
	"cmp"
	"slices"
	"strconv"
)

// ============================================================================
// RANKING — Deterministic top-K selection
// ============================================================================
// Pipeline: snapshot → sort → limit → percentages.
// Order is total: count descending, then value ascending (byte-wise), so the
// result never depends on map iteration or ingestion order.
// ============================================================================

// Rank returns the top k entries of a counter.
// k <= 0 yields an empty slice; fewer than k values yields all of them.
func Rank(c *Counter, k int) []RankedEntry {
	entries, total := c.snapshot()
	return rankEntries(entries, total, k)
}

func rankEntries(entries []ValueCount, total, k int) []RankedEntry {
	if k <= 0 || len(entries) == 0 {
		return []RankedEntry{}
	}

	SortValueCounts(entries)

	if len(entries) > k {
		entries = entries[:k]
	}

	ranked := make([]RankedEntry, len(entries))
	for i, e := range entries {
		ranked[i] = RankedEntry{
			Value:      e.Value,
			Count:      e.Count,
			Percentage: Percentage(e.Count, total),
		}
	}
	return ranked
}

// CompareValueCounts orders a before b when a has the larger count, or the
// same count and the lexicographically smaller value.
func CompareValueCounts(a, b ValueCount) int {
	if c := cmp.Compare(b.Count, a.Count); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}

// SortValueCounts sorts in ranking order.
func SortValueCounts(entries []ValueCount) {
	slices.SortFunc(entries, CompareValueCounts)
}

// ============================================================================
// PERCENTAGES
// ============================================================================

// Percentage returns 100*count/total rounded to one decimal, halves going to
// the even digit of the exact binary value. Returns NoPercentage when total
// is not positive.
func Percentage(count, total int) float64 {
	if total <= 0 {
		return NoPercentage
	}
	ratio := 100 * float64(count) / float64(total)
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(ratio, 'f', 1, 64), 64)
	if err != nil {
		return ratio
	}
	return rounded
}

// FormatPercentage renders a percentage the way reports print it:
// one decimal place, or "-1" for NoPercentage.
func FormatPercentage(p float64) string {
	if p == NoPercentage {
		return "-1"
	}
	return strconv.FormatFloat(p, 'f', 1, 64)
}

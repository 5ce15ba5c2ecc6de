package colour

import (
	"cmp"
	"slices"
)

// Frequency is a distinct colour value and the number of times it occurred.
type Frequency struct {
	Value Value
	Count int
}

// Index holds the deduplicated view of a raw colour stream.
type Index struct {
	// Raw is the number of values in the stream.
	Raw int
	// Distinct lists each distinct colour in ascending Value order.
	Distinct []Color
	// ByCount lists each distinct value by descending count. Equal counts
	// keep ascending Value order.
	ByCount []Frequency
}

// IndexValues sorts values in place and counts each distinct value.
// Because the stream is sorted every run of equal values is contiguous, so a
// single pass finds the end of each run and records its length.
func IndexValues(values []Value) Index {
	slices.Sort(values)

	idx := Index{Raw: len(values)}
	for i := 0; i < len(values); {
		v := values[i]
		last := i
		for last+1 < len(values) && values[last+1] == v {
			last++
		}
		count := last + 1 - i
		idx.Distinct = append(idx.Distinct, v.Color())
		idx.ByCount = append(idx.ByCount, Frequency{Value: v, Count: count})
		i += count
	}

	slices.SortStableFunc(idx.ByCount, func(a, b Frequency) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return idx
}

// Counts returns the occurrence count of every distinct value.
func (idx Index) Counts() map[Value]int {
	counts := make(map[Value]int, len(idx.ByCount))
	for _, f := range idx.ByCount {
		counts[f.Value] = f.Count
	}
	return counts
}

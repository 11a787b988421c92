package repeat

import "sort"

// Tag classifies how a read overlaps a repeat-tract hypothesis.
type Tag string

const (
	// TagFull marks reads anchored in both the prefix and the suffix flank.
	TagFull Tag = "FULL"
	// TagPref marks reads anchored in the prefix flank only.
	TagPref Tag = "PREF"
	// TagPost marks reads anchored in the suffix flank only.
	TagPost Tag = "POST"
	// TagRept marks reads that plausibly sit entirely inside the repeat
	// tract.
	TagRept Tag = "REPT"
	// TagHang marks reads with an ambiguous unmatched overhang; they are
	// counted but carry no usable evidence.
	TagHang Tag = "HANG"
)

// Tags lists all valid tags.
var Tags = []Tag{TagFull, TagPref, TagPost, TagRept, TagHang}

// CountTable accumulates, per tag, the number of reads observed for each
// repeat unit count. Incr is the only mutator.
type CountTable struct {
	counts map[Tag]map[int]int
}

// NewCountTable returns an empty table.
func NewCountTable() *CountTable {
	return &CountTable{counts: map[Tag]map[int]int{}}
}

// Incr adds one observation of the given unit count under tag.
func (c *CountTable) Incr(tag Tag, units int) {
	m := c.counts[tag]
	if m == nil {
		m = map[int]int{}
		c.counts[tag] = m
	}
	m[units]++
}

// Get returns the count recorded for (tag, units), zero when absent.
func (c *CountTable) Get(tag Tag, units int) int {
	return c.counts[tag][units]
}

// Total returns the number of reads assigned the given tag.
func (c *CountTable) Total(tag Tag) int {
	total := 0
	for _, v := range c.counts[tag] {
		total += v
	}
	return total
}

// MaxCount returns the largest per-unit-count value recorded under tag, or
// zero when the tag has no observations.
func (c *CountTable) MaxCount(tag Tag) int {
	best := 0
	for _, v := range c.counts[tag] {
		if v > best {
			best = v
		}
	}
	return best
}

// Units returns the unit counts observed under tag, ascending.
func (c *CountTable) Units(tag Tag) []int {
	units := make([]int, 0, len(c.counts[tag]))
	for u := range c.counts[tag] {
		units = append(units, u)
	}
	sort.Ints(units)
	return units
}

// Merge folds other into c. Used as the reduce step when classification
// runs in parallel.
func (c *CountTable) Merge(other *CountTable) {
	for tag, m := range other.counts {
		for units, n := range m {
			dst := c.counts[tag]
			if dst == nil {
				dst = map[int]int{}
				c.counts[tag] = dst
			}
			dst[units] += n
		}
	}
}

// Map returns a copy of the table keyed by tag and unit count, suitable for
// JSON serialization.
func (c *CountTable) Map() map[Tag]map[int]int {
	out := make(map[Tag]map[int]int, len(c.counts))
	for tag, m := range c.counts {
		cp := make(map[int]int, len(m))
		for u, n := range m {
			cp[u] = n
		}
		out[tag] = cp
	}
	return out
}

// Detail is the diagnostic record retained for each classified non-HANG
// read.
type Detail struct {
	Tag   Tag    `json:"tag"`
	Units int    `json:"h"`
	Seq   string `json:"seq"`
}

package vignette

// Counts maps each category to the number of records still available.
type Counts map[Category]int

// Total sums the counts across all categories.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Pool tracks which record ids have been delivered in the current session.
// The zero value is not usable; create one with NewPool. A Pool is owned by a
// single session and is not safe for concurrent use.
type Pool struct {
	excluded map[string]struct{}
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{excluded: make(map[string]struct{})}
}

// MarkUsed excludes id from future selections. Marking an id twice is a no-op.
func (p *Pool) MarkUsed(id string) {
	p.excluded[id] = struct{}{}
}

// Used reports whether id has been excluded.
func (p *Pool) Used(id string) bool {
	_, ok := p.excluded[id]
	return ok
}

// Len returns the number of excluded ids.
func (p *Pool) Len() int {
	return len(p.excluded)
}

// Reset clears the exclusion set. Callers reset only when Exhausted reports
// true, before requesting the next selection.
func (p *Pool) Reset() {
	clear(p.excluded)
}

// Remaining counts the not-yet-used records per category over records. Every
// known category is present in the result, zero when nothing remains.
func (p *Pool) Remaining(records []Record) Counts {
	counts := make(Counts, len(Categories))
	for _, c := range Categories {
		counts[c] = 0
	}
	for _, r := range records {
		if p.Used(r.ID) {
			continue
		}
		counts[r.Category]++
	}
	return counts
}

// Exhausted reports whether no record remains in any category.
func (p *Pool) Exhausted(records []Record) bool {
	return p.Remaining(records).Total() == 0
}

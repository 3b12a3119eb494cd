package vignette

import "fmt"

// Rand is the random source used for selection and reflection choice.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Select draws one record of category uniformly at random from those not yet
// used in pool. It does not mark the record as used.
func Select(records []Record, pool *Pool, category Category, rng Rand) (Record, error) {
	if !category.Valid() {
		return Record{}, fmt.Errorf("vignette: select: invalid category %d", int(category))
	}
	var candidates []Record
	for _, r := range records {
		if r.Category == category && !pool.Used(r.ID) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return Record{}, fmt.Errorf("%w %s", ErrNoCandidates, category)
	}
	return candidates[rng.IntN(len(candidates))], nil
}

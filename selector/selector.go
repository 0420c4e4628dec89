// Package selector picks the next wallpaper from the filtered candidate set.
package selector

import (
	"math/rand/v2"
	"time"

	"git.sr.ht/~avern/wpcraft/errors"
	"git.sr.ht/~avern/wpcraft/filter"
	"git.sr.ht/~avern/wpcraft/index"
)

// Selector chooses wallpapers uniformly at random. The random source is
// injected so picks are reproducible in tests.
type Selector struct {
	r *rand.Rand
}

// New creates a selector using the given random source.
func New(r *rand.Rand) *Selector {
	return &Selector{r: r}
}

// NewSeeded creates a selector seeded from the clock.
func NewSeeded() *Selector {
	return New(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))
}

// Pick narrows records to the candidates passing the filter and picks one
// at random. When more than one candidate exists and the pick collides with
// excludeID (the currently shown wallpaper), it resamples exactly once; a
// second collision is accepted rather than looping.
func (s *Selector) Pick(
	records []index.Record,
	f filter.Filter,
	judge filter.JudgmentFunc,
	excludeID string,
) (index.Record, error) {
	var candidates []index.Record
	for _, r := range records {
		if f.Matches(r, judge) {
			candidates = append(candidates, r)
		}
	}

	if len(candidates) == 0 {
		return index.Record{}, errors.ErrNoCandidates
	}

	pick := candidates[s.r.IntN(len(candidates))]
	if pick.ID == excludeID && len(candidates) > 1 {
		pick = candidates[s.r.IntN(len(candidates))]
	}
	return pick, nil
}

package search

import (
	"math/rand"

	"lukechampine.com/frand"

	"github.com/ob-ivan/bot2048/internal/board"
	"github.com/ob-ivan/bot2048/internal/transform"
)

// RandomFinder picks a uniformly random effective move. It is a baseline
// policy and never takes part in quality-based search.
type RandomFinder struct {
	Mutator transform.Mutator
	// Rand makes the choice reproducible; nil uses frand.
	Rand *rand.Rand
}

// Find implements Finder. The returned quality is always 0.
func (f RandomFinder) Find(b board.Board) (QualityMove, bool) {
	candidates := transform.Candidates(mutatorOrPlain(f.Mutator), b)
	if len(candidates) == 0 {
		return QualityMove{}, false
	}
	var i int
	if f.Rand != nil {
		i = f.Rand.Intn(len(candidates))
	} else {
		i = frand.Intn(len(candidates))
	}
	return QualityMove{Direction: candidates[i].Direction}, true
}

package dice

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicemath/internal/hypergeom"
)

// DefaultLimit bounds how many dice a search will combine before giving up.
const DefaultLimit = 20

// DefaultDieSet returns the standard polyhedral dice. A fresh slice is
// returned on every call so no two searches can share (or mutate) the
// default.
func DefaultDieSet() []int {
	return []int{4, 6, 8, 10, 12, 20}
}

// Solution pairs a verified dice combination with its threshold sum.
//
// Invariant: Threshold lies in [Dice.MinSum(), Dice.MaxSum()] and rolling
// Threshold or higher with Dice has exactly the searched-for probability.
type Solution struct {
	Dice      Combination
	Threshold int
}

// Finder searches for the smallest dice combinations that model a target
// probability exactly. Candidate sizes are tried from 1 upward; within a
// size every combination-with-replacement from the die set is checked, and
// the first size producing any solution wins. All solutions at that size
// are returned — the search never short-circuits inside a size, because
// callers rely on receiving every minimal-size match.
type Finder struct {
	set     []int
	limit   int
	workers int
	logger  *zap.Logger
}

// NewFinder creates a Finder over the given die set.
//
// A nil or empty set falls back to DefaultDieSet; limit <= 0 falls back to
// DefaultLimit; workers <= 0 runs sequentially. Every face count must be
// >= 2.
func NewFinder(set []int, limit, workers int, logger *zap.Logger) (*Finder, error) {
	if len(set) == 0 {
		set = DefaultDieSet()
	}
	for _, faces := range set {
		if faces < 2 {
			return nil, fmt.Errorf("dice: die with %d faces is not a die, need >= 2", faces)
		}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	owned := make([]int, len(set))
	copy(owned, set)
	sort.Ints(owned)
	return &Finder{set: owned, limit: limit, workers: workers, logger: logger}, nil
}

// Find returns every minimal-size combination whose roll distribution
// splits exactly at some threshold into the target proportion, with that
// threshold. The result is empty when no combination of up to limit dice
// matches; that is an expected outcome for many targets, not an error.
//
// Solutions are reported in ascending lexicographic order of face counts
// regardless of how candidate evaluation interleaves across workers.
//
// Precondition: target is a reduced fraction with Denominator >= 1.
// Postcondition: all returned combinations have the same length.
func (f *Finder) Find(ctx context.Context, target hypergeom.Fraction) ([]Solution, error) {
	for size := 1; size <= f.limit; size++ {
		solutions, err := f.findSize(ctx, target, size)
		if err != nil {
			return nil, err
		}
		if len(solutions) > 0 {
			f.logger.Info("dice combinations found",
				zap.String("target", target.String()),
				zap.Int("size", size),
				zap.Int("solutions", len(solutions)),
			)
			return solutions, nil
		}
		f.logger.Debug("size exhausted without a match",
			zap.String("target", target.String()),
			zap.Int("size", size),
		)
	}
	f.logger.Info("no dice combination models target",
		zap.String("target", target.String()),
		zap.Int("limit", f.limit),
	)
	return nil, nil
}

// findSize checks every combination of exactly size dice. The whole size
// is always evaluated before a verdict so that no minimal-size solution is
// missed.
func (f *Finder) findSize(ctx context.Context, target hypergeom.Fraction, size int) ([]Solution, error) {
	gen, err := NewGenerator(f.set, size)
	if err != nil {
		return nil, err
	}

	candidates := make(chan Combination)
	results := make(chan Solution)

	var wg sync.WaitGroup
	for w := 0; w < f.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for combo := range candidates {
				if threshold := Threshold(target, combo); threshold != NoThreshold {
					results <- Solution{Dice: combo, Threshold: threshold}
				}
			}
		}()
	}

	go func() {
		defer close(candidates)
		for combo, ok := gen.Next(); ok; combo, ok = gen.Next() {
			select {
			case candidates <- combo:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var solutions []Solution
	for s := range results {
		solutions = append(solutions, s)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Deterministic order independent of worker interleaving.
	sort.Slice(solutions, func(i, j int) bool {
		return lessCombination(solutions[i].Dice, solutions[j].Dice)
	})
	return solutions, nil
}

func lessCombination(a, b Combination) bool {
	for i := range a {
		if i >= len(b) {
			return false
		}
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

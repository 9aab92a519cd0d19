package hypergeom

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidParameters is returned when the population, success count, or
// draw count violate the hypergeometric preconditions.
var ErrInvalidParameters = errors.New("invalid parameters")

// ErrInvalidRelation is returned when CDF receives an unrecognised relation.
var ErrInvalidRelation = errors.New("invalid relation")

// Relation selects which target-success values a CDF query sums over.
type Relation string

// Supported CDF relations.
const (
	RelEqual          Relation = "eq"  // P(X = k)
	RelLessOrEqual    Relation = "lte" // P(X <= k)
	RelLess           Relation = "lt"  // P(X < k)
	RelGreaterOrEqual Relation = "gte" // P(X >= k)
	RelGreater        Relation = "gt"  // P(X > k)
	RelNotEqual       Relation = "neq" // P(X != k)
)

// Probability is a single pmf result: the float value and its exact form.
type Probability struct {
	Value float64
	Exact Fraction
}

// PMF computes P(X = target) for the hypergeometric distribution:
// drawing target successes in draws draws, without replacement, from a
// population containing successes successful items.
//
//	p(k) = C(K, k) * C(N-K, n-k) / C(N, n)
//
// Target values that are negative or exceed draws or successes are valid
// but impossible queries and yield probability 0, not an error.
//
// Precondition: successes <= population, draws <= population, population >= 1.
// Postcondition: the Exact fraction is in lowest terms.
func PMF(population, successes, draws, target int) (Probability, error) {
	if successes > population {
		return Probability{}, fmt.Errorf("%w: successes %d exceeds population %d", ErrInvalidParameters, successes, population)
	}
	if draws > population {
		return Probability{}, fmt.Errorf("%w: draws %d exceeds population %d", ErrInvalidParameters, draws, population)
	}
	if population < 1 {
		return Probability{}, fmt.Errorf("%w: population %d must be >= 1", ErrInvalidParameters, population)
	}

	if target < 0 || target > draws || target > successes {
		return Probability{Value: 0, Exact: Fraction{Numerator: 0, Denominator: 1}}, nil
	}

	// Exact binomial terms; big.Int keeps intermediate products exact for
	// populations far beyond what int64 binomials tolerate.
	ways := new(big.Int).Binomial(int64(successes), int64(target))
	ways.Mul(ways, new(big.Int).Binomial(int64(population-successes), int64(draws-target)))
	total := new(big.Int).Binomial(int64(population), int64(draws))

	r := new(big.Rat).SetFrac(ways, total)
	exact, err := fractionFromRat(r)
	if err != nil {
		return Probability{}, err
	}

	value, _ := r.Float64()
	return Probability{Value: value, Exact: exact}, nil
}

// CDF sums PMF over the target-success values selected by rel. The feasible
// range of successes is [0, min(draws, successes)]; relations are evaluated
// against that range, so e.g. RelGreaterOrEqual with target 0 covers the
// whole distribution.
//
// Precondition: the PMF preconditions hold; rel is one of the Rel constants.
func CDF(population, successes, draws, target int, rel Relation) (float64, error) {
	maxSuccesses := draws
	if successes < maxSuccesses {
		maxSuccesses = successes
	}

	var lo, hi int // inclusive bounds of the summation window
	exclude := -1  // a single k to omit, for RelNotEqual
	switch rel {
	case RelEqual:
		lo, hi = target, target
	case RelLessOrEqual:
		lo, hi = 0, target
	case RelLess:
		lo, hi = 0, target-1
	case RelGreaterOrEqual:
		lo, hi = target, maxSuccesses
	case RelGreater:
		lo, hi = target+1, maxSuccesses
	case RelNotEqual:
		lo, hi = 0, maxSuccesses
		exclude = target
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRelation, rel)
	}

	var sum float64
	for k := lo; k <= hi; k++ {
		if k == exclude {
			continue
		}
		p, err := PMF(population, successes, draws, k)
		if err != nil {
			return 0, err
		}
		sum += p.Value
	}
	return sum, nil
}

package dice

import (
	"sort"

	"github.com/cory-johannsen/dicemath/internal/hypergeom"
)

// NoThreshold is the sentinel returned when no exact threshold exists.
// It can never collide with a real threshold: every die contributes at
// least 1 to a roll sum, so all legitimate thresholds are >= 1.
const NoThreshold = 0

// Threshold returns the smallest roll sum such that the probability of
// rolling that sum or higher with c is exactly target, or NoThreshold when
// no such sum exists.
//
// The target proportion must be expressible as a whole outcome count: when
// c.Outcomes() is not divisible by target.Denominator there is no exact
// split and the scan is skipped entirely. Otherwise the distribution is
// walked in descending sum order accumulating counts; the first sum whose
// running total hits the target count exactly is the threshold. Overshooting
// the target count means no exact split exists for this combination.
//
// Precondition: target.Denominator >= 1 (a reduced hypergeom.Fraction).
func Threshold(target hypergeom.Fraction, c Combination) int {
	total := c.Outcomes()
	if total%target.Denominator != 0 {
		return NoThreshold
	}
	targetCount := target.Numerator * (total / target.Denominator)

	dist := Enumerate(c)
	sums := make([]int, 0, len(dist))
	for sum := range dist {
		sums = append(sums, sum)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sums)))

	var running int64
	for _, sum := range sums {
		running += dist[sum]
		if running == targetCount {
			return sum
		}
		if running > targetCount {
			return NoThreshold
		}
	}
	return NoThreshold
}

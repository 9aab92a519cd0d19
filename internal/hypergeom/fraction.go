// Package hypergeom computes exact hypergeometric probabilities, reporting
// each result both as a float and as an irreducible integer fraction.
package hypergeom

import (
	"fmt"
	"math/big"
)

// Fraction is a probability expressed as an irreducible integer ratio.
//
// Invariant: gcd(Numerator, Denominator) == 1 and Denominator >= 1.
type Fraction struct {
	Numerator   int64
	Denominator int64
}

// Reduce builds a Fraction from num/den in lowest terms.
//
// Precondition: num >= 0, den >= 1.
// Postcondition: gcd of the returned terms is 1.
func Reduce(num, den int64) Fraction {
	if den < 1 {
		panic(fmt.Sprintf("hypergeom: Reduce called with denominator %d < 1", den))
	}
	if num < 0 {
		panic(fmt.Sprintf("hypergeom: Reduce called with numerator %d < 0", num))
	}
	g := gcd(num, den)
	return Fraction{Numerator: num / g, Denominator: den / g}
}

// Float returns the fraction as a float64.
func (f Fraction) Float() float64 {
	return float64(f.Numerator) / float64(f.Denominator)
}

// String returns the fraction in "num/den" form, e.g. "2/9".
func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// fractionFromRat converts a normalised big.Rat into a Fraction.
// big.Rat keeps its terms in lowest form, so no further reduction is needed.
// Returns an error when either reduced term does not fit in an int64.
func fractionFromRat(r *big.Rat) (Fraction, error) {
	num, den := r.Num(), r.Denom()
	if !num.IsInt64() || !den.IsInt64() {
		return Fraction{}, fmt.Errorf("hypergeom: reduced fraction %s overflows int64", r.RatString())
	}
	return Fraction{Numerator: num.Int64(), Denominator: den.Int64()}, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// Package dice enumerates exact outcome distributions for combinations of
// polyhedral dice and searches for the smallest combination whose summed
// rolls reproduce a target probability at some threshold sum.
package dice

import (
	"fmt"
	"sort"
	"strings"
)

// Combination is a non-decreasing sequence of die face counts, e.g.
// {4, 6, 6} for one d4 and two d6. A combination is a multiset: order
// never changes its identity, and the generator only ever produces the
// sorted form.
//
// Invariant: every face count is >= 2; the sequence is non-decreasing.
type Combination []int

// Outcomes returns the total number of distinct roll tuples, the product
// of all face counts.
//
// Postcondition: return value >= 1 (the empty combination has one outcome,
// the empty roll).
func (c Combination) Outcomes() int64 {
	total := int64(1)
	for _, faces := range c {
		total *= int64(faces)
	}
	return total
}

// MinSum returns the smallest achievable roll sum (every die shows 1).
func (c Combination) MinSum() int {
	return len(c)
}

// MaxSum returns the largest achievable roll sum (every die shows its
// face count).
func (c Combination) MaxSum() int {
	sum := 0
	for _, faces := range c {
		sum += faces
	}
	return sum
}

// String renders the combination in dice notation, grouping equal dice:
// {4, 6, 6} becomes "d4+2d6".
func (c Combination) String() string {
	if len(c) == 0 {
		return "none"
	}
	var parts []string
	run := 1
	for i := 1; i <= len(c); i++ {
		if i < len(c) && c[i] == c[i-1] {
			run++
			continue
		}
		if run == 1 {
			parts = append(parts, fmt.Sprintf("d%d", c[i-1]))
		} else {
			parts = append(parts, fmt.Sprintf("%dd%d", run, c[i-1]))
		}
		run = 1
	}
	return strings.Join(parts, "+")
}

// Generator lazily yields every non-decreasing selection of size dice from
// an allowed die set, in ascending lexicographic order of face counts.
// This is combinations-with-replacement: {4, 4}, {4, 6}, {6, 6}, ... for
// set {4, 6}. The sequence is finite and restartable via Reset.
//
// Invariant: the allowed set is copied and sorted at construction; callers
// mutating their slice afterwards cannot perturb a running generation.
type Generator struct {
	set  []int
	size int
	idx  []int
	done bool
}

// NewGenerator creates a Generator over set for combinations of the given
// size.
//
// Precondition: size >= 1; set is non-empty and every face count is >= 2.
func NewGenerator(set []int, size int) (*Generator, error) {
	if size < 1 {
		return nil, fmt.Errorf("dice: combination size %d must be >= 1", size)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("dice: die set must not be empty")
	}
	sorted := make([]int, len(set))
	copy(sorted, set)
	sort.Ints(sorted)
	if sorted[0] < 2 {
		return nil, fmt.Errorf("dice: die with %d faces is not a die, need >= 2", sorted[0])
	}
	return &Generator{set: sorted, size: size}, nil
}

// Next returns the next combination in sequence, or ok == false once the
// set is exhausted. The returned Combination is freshly allocated; callers
// may retain it.
func (g *Generator) Next() (Combination, bool) {
	if g.done {
		return nil, false
	}
	if g.idx == nil {
		g.idx = make([]int, g.size)
	}

	combo := make(Combination, g.size)
	for i, j := range g.idx {
		combo[i] = g.set[j]
	}
	g.advance()
	return combo, true
}

// Reset rewinds the generator to the first combination.
func (g *Generator) Reset() {
	g.idx = nil
	g.done = false
}

// advance moves idx to the next non-decreasing index tuple: find the
// rightmost position that can still grow, bump it, and level everything
// after it to the same value.
func (g *Generator) advance() {
	for i := g.size - 1; i >= 0; i-- {
		if g.idx[i] < len(g.set)-1 {
			next := g.idx[i] + 1
			for j := i; j < g.size; j++ {
				g.idx[j] = next
			}
			return
		}
	}
	g.done = true
}

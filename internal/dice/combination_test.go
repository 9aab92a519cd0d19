package dice_test

import (
	"testing"

	"github.com/cory-johannsen/dicemath/internal/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func collect(t *testing.T, g *dice.Generator) []dice.Combination {
	t.Helper()
	var combos []dice.Combination
	for c, ok := g.Next(); ok; c, ok = g.Next() {
		combos = append(combos, c)
	}
	return combos
}

func TestCombination_Outcomes(t *testing.T) {
	tests := []struct {
		combo dice.Combination
		want  int64
	}{
		{dice.Combination{6}, 6},
		{dice.Combination{6, 6}, 36},
		{dice.Combination{4, 6, 8}, 192},
		{dice.Combination{2}, 2},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.combo.Outcomes(), "%s", tc.combo)
	}
}

func TestCombination_SumRange(t *testing.T) {
	c := dice.Combination{4, 6, 6}
	assert.Equal(t, 3, c.MinSum())
	assert.Equal(t, 16, c.MaxSum())
}

func TestCombination_String(t *testing.T) {
	tests := []struct {
		combo dice.Combination
		want  string
	}{
		{dice.Combination{6}, "d6"},
		{dice.Combination{6, 6}, "2d6"},
		{dice.Combination{4, 6, 6}, "d4+2d6"},
		{dice.Combination{4, 4, 6, 20}, "2d4+d6+d20"},
		{dice.Combination{}, "none"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.combo.String())
	}
}

func TestGenerator_PairsFromTwoDice(t *testing.T) {
	g, err := dice.NewGenerator([]int{4, 6}, 2)
	require.NoError(t, err)
	combos := collect(t, g)
	require.Len(t, combos, 3)
	assert.Equal(t, dice.Combination{4, 4}, combos[0])
	assert.Equal(t, dice.Combination{4, 6}, combos[1])
	assert.Equal(t, dice.Combination{6, 6}, combos[2])
}

func TestGenerator_SortsItsSet(t *testing.T) {
	g, err := dice.NewGenerator([]int{20, 4, 12}, 1)
	require.NoError(t, err)
	combos := collect(t, g)
	require.Len(t, combos, 3)
	assert.Equal(t, dice.Combination{4}, combos[0])
	assert.Equal(t, dice.Combination{12}, combos[1])
	assert.Equal(t, dice.Combination{20}, combos[2])
}

func TestGenerator_Reset(t *testing.T) {
	g, err := dice.NewGenerator([]int{4, 6}, 2)
	require.NoError(t, err)
	first := collect(t, g)
	g.Reset()
	second := collect(t, g)
	assert.Equal(t, first, second, "Reset must restart the identical sequence")
}

func TestGenerator_RejectsBadInput(t *testing.T) {
	_, err := dice.NewGenerator(nil, 1)
	assert.Error(t, err, "empty set")
	_, err = dice.NewGenerator([]int{6}, 0)
	assert.Error(t, err, "zero size")
	_, err = dice.NewGenerator([]int{1, 6}, 1)
	assert.Error(t, err, "coin with one face")
}

// Property: the generator yields exactly C(len(set)+size-1, size)
// combinations, each non-decreasing, in strictly ascending lexicographic
// order.
func TestGenerator_Property_CountAndOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		setSize := rapid.IntRange(1, 5).Draw(rt, "set_size")
		size := rapid.IntRange(1, 5).Draw(rt, "size")

		set := make([]int, setSize)
		for i := range set {
			set[i] = 2 + 2*i
		}

		g, err := dice.NewGenerator(set, size)
		require.NoError(rt, err)

		want := multisetCount(setSize, size)
		var prev dice.Combination
		count := 0
		for c, ok := g.Next(); ok; c, ok = g.Next() {
			count++
			for i := 1; i < len(c); i++ {
				assert.LessOrEqual(rt, c[i-1], c[i], "combination %v must be non-decreasing", c)
			}
			if prev != nil {
				assert.True(rt, lexLess(prev, c), "%v must precede %v", prev, c)
			}
			prev = c
		}
		assert.Equal(rt, want, count, "C(%d+%d-1, %d) combinations expected", setSize, size, size)
	})
}

// multisetCount computes C(n+k-1, k) by iterative multiplication.
func multisetCount(n, k int) int {
	num, den := 1, 1
	for i := 0; i < k; i++ {
		num *= n + k - 1 - i
		den *= i + 1
	}
	return num / den
}

func lexLess(a, b dice.Combination) bool {
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

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dicemath/internal/dice"
	"github.com/cory-johannsen/dicemath/internal/hypergeom"
	"github.com/cory-johannsen/dicemath/internal/storage/postgres"
	"github.com/cory-johannsen/dicemath/internal/testutil"
)

func TestSearchRepository_RecordAndGet(t *testing.T) {
	repo := postgres.NewSearchRepository(testutil.NewPool(t))
	ctx := context.Background()

	target := hypergeom.Fraction{Numerator: 2, Denominator: 9}
	solutions := []dice.Solution{
		{Dice: dice.Combination{4, 6, 6, 6}, Threshold: 16},
		{Dice: dice.Combination{6, 6, 8, 10}, Threshold: 21},
	}

	rec, err := repo.Record(ctx, target, []int{4, 6, 8, 10, 12, 20}, 20, solutions, 125*time.Millisecond)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, target, got.Target)
	assert.Equal(t, []int{4, 6, 8, 10, 12, 20}, got.DieSet)
	assert.Equal(t, 20, got.Limit)
	assert.Equal(t, 125*time.Millisecond, got.Elapsed)
	assert.Equal(t, solutions, got.Solutions)
}

func TestSearchRepository_RecordExhaustedSearch(t *testing.T) {
	repo := postgres.NewSearchRepository(testutil.NewPool(t))
	ctx := context.Background()

	rec, err := repo.Record(ctx, hypergeom.Fraction{Numerator: 1, Denominator: 7},
		[]int{4, 6}, 3, nil, 10*time.Millisecond)
	require.NoError(t, err)

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Solutions, "a search without solutions is still a record")
}

func TestSearchRepository_GetMissing(t *testing.T) {
	repo := postgres.NewSearchRepository(testutil.NewPool(t))
	_, err := repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, postgres.ErrSearchNotFound)
}

func TestSearchRepository_Recent(t *testing.T) {
	repo := postgres.NewSearchRepository(testutil.NewPool(t))
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		_, err := repo.Record(ctx, hypergeom.Fraction{Numerator: 1, Denominator: i + 1},
			[]int{6}, 5, nil, time.Duration(i)*time.Millisecond)
		require.NoError(t, err)
	}

	records, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/dicemath/internal/dice"
	"github.com/cory-johannsen/dicemath/internal/hypergeom"
)

// ErrSearchNotFound is returned when a search lookup yields no results.
var ErrSearchNotFound = errors.New("search not found")

// SearchRecord is one completed dice search with its solutions.
type SearchRecord struct {
	ID        uuid.UUID
	Target    hypergeom.Fraction
	DieSet    []int
	Limit     int
	Elapsed   time.Duration
	Solutions []dice.Solution
	CreatedAt time.Time
}

// SearchRepository persists completed searches and their solutions. The
// search engine itself stays storage-free; recording happens after Find
// returns.
type SearchRepository struct {
	db *pgxpool.Pool
}

// NewSearchRepository creates a SearchRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSearchRepository(db *pgxpool.Pool) *SearchRepository {
	return &SearchRepository{db: db}
}

// Record inserts a completed search and all of its solutions atomically.
//
// Precondition: target must be a reduced fraction; solutions may be empty
// (a search that exhausted its limit is still worth recording).
// Postcondition: Returns the stored SearchRecord with ID and CreatedAt set.
func (r *SearchRepository) Record(
	ctx context.Context,
	target hypergeom.Fraction,
	dieSet []int,
	limit int,
	solutions []dice.Solution,
	elapsed time.Duration,
) (SearchRecord, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return SearchRecord{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rec := SearchRecord{
		ID:        uuid.New(),
		Target:    target,
		DieSet:    dieSet,
		Limit:     limit,
		Elapsed:   elapsed,
		Solutions: solutions,
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO searches (id, numerator, denominator, die_set, size_limit, elapsed_ms)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		rec.ID, target.Numerator, target.Denominator,
		intsToPg(dieSet), limit, elapsed.Milliseconds(),
	).Scan(&rec.CreatedAt)
	if err != nil {
		return SearchRecord{}, fmt.Errorf("inserting search: %w", err)
	}

	for _, s := range solutions {
		_, err = tx.Exec(ctx,
			`INSERT INTO search_solutions (search_id, dice, threshold)
			 VALUES ($1, $2, $3)`,
			rec.ID, intsToPg(s.Dice), s.Threshold,
		)
		if err != nil {
			return SearchRecord{}, fmt.Errorf("inserting solution %s: %w", s.Dice, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return SearchRecord{}, fmt.Errorf("committing search: %w", err)
	}
	return rec, nil
}

// Get retrieves a search and its solutions by ID.
//
// Postcondition: Returns the SearchRecord, or ErrSearchNotFound when no
// search has the given ID.
func (r *SearchRepository) Get(ctx context.Context, id uuid.UUID) (SearchRecord, error) {
	var (
		rec       SearchRecord
		dieSet    []int32
		elapsedMs int64
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, numerator, denominator, die_set, size_limit, elapsed_ms, created_at
		 FROM searches WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.Target.Numerator, &rec.Target.Denominator,
		&dieSet, &rec.Limit, &elapsedMs, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SearchRecord{}, ErrSearchNotFound
		}
		return SearchRecord{}, fmt.Errorf("querying search: %w", err)
	}
	rec.DieSet = pgToInts(dieSet)
	rec.Elapsed = time.Duration(elapsedMs) * time.Millisecond

	rows, err := r.db.Query(ctx,
		`SELECT dice, threshold FROM search_solutions
		 WHERE search_id = $1 ORDER BY dice`,
		id,
	)
	if err != nil {
		return SearchRecord{}, fmt.Errorf("querying solutions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			combo     []int32
			threshold int
		)
		if err := rows.Scan(&combo, &threshold); err != nil {
			return SearchRecord{}, fmt.Errorf("scanning solution: %w", err)
		}
		rec.Solutions = append(rec.Solutions, dice.Solution{
			Dice:      dice.Combination(pgToInts(combo)),
			Threshold: threshold,
		})
	}
	if err := rows.Err(); err != nil {
		return SearchRecord{}, fmt.Errorf("iterating solutions: %w", err)
	}
	return rec, nil
}

// Recent returns the most recently recorded searches, newest first,
// without their solution lists.
//
// Precondition: n >= 1.
func (r *SearchRepository) Recent(ctx context.Context, n int) ([]SearchRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, numerator, denominator, die_set, size_limit, elapsed_ms, created_at
		 FROM searches ORDER BY created_at DESC LIMIT $1`,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent searches: %w", err)
	}
	defer rows.Close()

	var records []SearchRecord
	for rows.Next() {
		var (
			rec       SearchRecord
			dieSet    []int32
			elapsedMs int64
		)
		if err := rows.Scan(&rec.ID, &rec.Target.Numerator, &rec.Target.Denominator,
			&dieSet, &rec.Limit, &elapsedMs, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning search: %w", err)
		}
		rec.DieSet = pgToInts(dieSet)
		rec.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating searches: %w", err)
	}
	return records, nil
}

func intsToPg(values []int) []int32 {
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = int32(v)
	}
	return out
}

func pgToInts(values []int32) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}

// Package main is the dice probability modeler. It computes an exact
// hypergeometric probability and searches for the smallest dice
// combinations whose summed rolls reproduce it at a threshold.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicemath/internal/config"
	"github.com/cory-johannsen/dicemath/internal/dice"
	"github.com/cory-johannsen/dicemath/internal/hypergeom"
	"github.com/cory-johannsen/dicemath/internal/observability"
	"github.com/cory-johannsen/dicemath/internal/scenario"
	"github.com/cory-johannsen/dicemath/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	scenariosDir := flag.String("scenarios", "", "path to scenario YAML files directory (empty = built-in demo)")
	persist := flag.Bool("persist", false, "record searches in the configured database")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var repo *postgres.SearchRepository
	if *persist {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		repo = postgres.NewSearchRepository(pool.DB())
	}

	scenarios, err := loadScenarios(*scenariosDir)
	if err != nil {
		logger.Fatal("loading scenarios", zap.Error(err))
	}

	for _, s := range scenarios {
		if err := runScenario(ctx, cfg.Search, s, repo, logger); err != nil {
			logger.Error("scenario failed", zap.String("scenario", s.ID), zap.Error(err))
			os.Exit(1)
		}
	}
}

// loadScenarios reads the scenario directory, or falls back to the
// built-in demo: both successes in two draws from a ten-item population
// with five successes.
func loadScenarios(dir string) ([]*scenario.Scenario, error) {
	if dir == "" {
		return []*scenario.Scenario{{
			ID:         "demo",
			Name:       "Two successes in two draws",
			Population: 10,
			Successes:  5,
			Draws:      2,
			Target:     2,
		}}, nil
	}
	return scenario.Load(dir)
}

func runScenario(
	ctx context.Context,
	search config.SearchConfig,
	s *scenario.Scenario,
	repo *postgres.SearchRepository,
	logger *zap.Logger,
) error {
	p, err := s.Probability()
	if err != nil {
		return fmt.Errorf("computing probability: %w", err)
	}

	dieSet := search.DieSet
	if len(s.DieSet) > 0 {
		dieSet = s.DieSet
	}
	limit := search.Limit
	if s.Limit > 0 {
		limit = s.Limit
	}

	finder, err := dice.NewFinder(dieSet, limit, search.Workers, logger)
	if err != nil {
		return fmt.Errorf("building finder: %w", err)
	}

	logger.Info("searching for dice combinations",
		zap.String("scenario", s.ID),
		zap.Float64("probability", p.Value),
		zap.String("fraction", p.Exact.String()),
		zap.Ints("die_set", dieSet),
		zap.Int("limit", limit),
	)

	start := time.Now()
	solutions, err := finder.Find(ctx, p.Exact)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	elapsed := time.Since(start)

	printSolutions(s, p.Exact, solutions)

	if repo != nil {
		rec, err := repo.Record(ctx, p.Exact, dieSet, limit, solutions, elapsed)
		if err != nil {
			return fmt.Errorf("recording search: %w", err)
		}
		logger.Info("search recorded", zap.String("id", rec.ID.String()))
	}
	return nil
}

func printSolutions(s *scenario.Scenario, target hypergeom.Fraction, solutions []dice.Solution) {
	fmt.Printf("Smallest combinations of dice that yield the matching hypergeometric distribution (%s, target %s):\n",
		s.ID, target)
	if len(solutions) == 0 {
		fmt.Println("None")
		return
	}
	for i, sol := range solutions {
		fmt.Printf("Solution %d\n", i+1)
		fmt.Printf("    Dice: %s\n", sol.Dice)
		fmt.Printf("    Threshold: %d\n", sol.Threshold)
	}
}

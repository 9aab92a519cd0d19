// Package scenario loads hypergeometric experiment definitions from YAML
// files so batches of dice searches can be described as content rather
// than code.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dicemath/internal/hypergeom"
)

// Scenario describes one hypergeometric draw experiment whose probability
// should be modelled with dice.
//
// Precondition: ID must be non-empty after loading; the draw parameters
// must satisfy the hypergeometric preconditions.
type Scenario struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Draw parameters: population of Population items containing
	// Successes successes, Draws draws, Target successes drawn.
	Population int `yaml:"population"`
	Successes  int `yaml:"successes"`
	Draws      int `yaml:"draws"`
	Target     int `yaml:"target"`

	// Search overrides; zero values defer to the configured search
	// settings.
	DieSet []int `yaml:"die_set"`
	Limit  int   `yaml:"limit"`
}

// Validate checks the scenario invariants.
//
// Postcondition: Returns nil when the scenario can be run, or an error
// naming the first violation.
func (s *Scenario) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("scenario: id must not be empty")
	}
	if s.Population < 1 {
		return fmt.Errorf("scenario %s: population %d must be >= 1", s.ID, s.Population)
	}
	if s.Successes > s.Population {
		return fmt.Errorf("scenario %s: successes %d exceeds population %d", s.ID, s.Successes, s.Population)
	}
	if s.Draws > s.Population {
		return fmt.Errorf("scenario %s: draws %d exceeds population %d", s.ID, s.Draws, s.Population)
	}
	for _, faces := range s.DieSet {
		if faces < 2 {
			return fmt.Errorf("scenario %s: die with %d faces is not a die, need >= 2", s.ID, faces)
		}
	}
	if s.Limit < 0 {
		return fmt.Errorf("scenario %s: limit %d must not be negative", s.ID, s.Limit)
	}
	return nil
}

// Probability computes the scenario's exact hypergeometric probability.
func (s *Scenario) Probability() (hypergeom.Probability, error) {
	return hypergeom.PMF(s.Population, s.Successes, s.Draws, s.Target)
}

// Load reads all .yaml files in dir and parses each as a Scenario.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed, validated scenarios (may be an empty
// slice) or a non-nil error.
func Load(dir string) ([]*Scenario, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	scenarios := make([]*Scenario, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var s Scenario
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("validating scenario file %s: %w", path, err)
		}
		scenarios = append(scenarios, &s)
	}
	return scenarios, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}

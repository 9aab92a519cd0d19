package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cory-johannsen/dicemath/internal/hypergeom"
	"github.com/cory-johannsen/dicemath/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "card_draw.yaml"), `
id: card_draw
name: "Two aces off the top"
description: "Probability of both aces in a two-card draw from a half-ace deck."
population: 10
successes: 5
draws: 2
target: 2
die_set: [6, 12]
limit: 8
`)
	scenarios, err := scenario.Load(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)

	s := scenarios[0]
	assert.Equal(t, "card_draw", s.ID)
	assert.Equal(t, 10, s.Population)
	assert.Equal(t, []int{6, 12}, s.DieSet)
	assert.Equal(t, 8, s.Limit)
}

func TestLoad_SkipsNonYAMLFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a scenario")
	writeFile(t, filepath.Join(dir, "draw.yml"), `
id: draw
population: 4
successes: 2
draws: 1
target: 1
`)
	scenarios, err := scenario.Load(dir)
	require.NoError(t, err)
	assert.Len(t, scenarios, 1)
}

func TestLoad_RejectsInvalidScenario(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), `
id: bad
population: 5
successes: 6
draws: 2
target: 1
`)
	_, err := scenario.Load(dir)
	assert.Error(t, err, "successes exceeding population must not load")
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.yaml"), "id: [unclosed")
	_, err := scenario.Load(dir)
	assert.Error(t, err)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := scenario.Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestScenario_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*scenario.Scenario)
		wantErr bool
	}{
		{"valid", func(s *scenario.Scenario) {}, false},
		{"missing id", func(s *scenario.Scenario) { s.ID = "" }, true},
		{"empty population", func(s *scenario.Scenario) { s.Population = 0 }, true},
		{"draws exceed population", func(s *scenario.Scenario) { s.Draws = 99 }, true},
		{"degenerate die", func(s *scenario.Scenario) { s.DieSet = []int{1} }, true},
		{"negative limit", func(s *scenario.Scenario) { s.Limit = -1 }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &scenario.Scenario{ID: "s", Population: 10, Successes: 5, Draws: 2, Target: 2}
			tc.mutate(s)
			err := s.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScenario_Probability(t *testing.T) {
	s := &scenario.Scenario{ID: "s", Population: 10, Successes: 5, Draws: 2, Target: 2}
	p, err := s.Probability()
	require.NoError(t, err)
	assert.Equal(t, hypergeom.Fraction{Numerator: 2, Denominator: 9}, p.Exact)
}

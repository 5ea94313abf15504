package eval

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MaxWeight bounds every configured weight, so terminal scores always dominate heuristic scores.
const MaxWeight = 1000

// Weights scales the terms of the heuristic.
type Weights struct {
	Material int `json:"material_weight"`
	Position int `json:"position_weight"`
	Mobility int `json:"mobility_weight"`
	Corner   int `json:"corner_weight"`
}

// Validate checks that all weights are within [0, MaxWeight]. The first invalid weight in field order is reported.
func (w Weights) Validate() error {
	for _, weight := range []struct {
		name  string
		value int
	}{
		{"material_weight", w.Material},
		{"position_weight", w.Position},
		{"mobility_weight", w.Mobility},
		{"corner_weight", w.Corner},
	} {
		if weight.value < 0 || weight.value > MaxWeight {
			return fmt.Errorf("%s must be between 0 and %d, got %d", weight.name, MaxWeight, weight.value)
		}
	}
	return nil
}

// Config selects weights by game phase. The endgame starts when at most EndgameEmpties squares are empty.
type Config struct {
	Midgame        Weights `json:"midgame"`
	Endgame        Weights `json:"endgame"`
	EndgameEmpties int     `json:"endgame_empties"`
}

// DefaultEndgameEmpties is the default phase threshold. It is a tuning knob, not a rule.
const DefaultEndgameEmpties = 14

// DefaultConfig favors position and mobility early and material late.
func DefaultConfig() Config {
	return Config{
		Midgame: Weights{
			Material: 1,
			Position: 10,
			Mobility: 60,
			Corner:   300,
		},
		Endgame: Weights{
			Material: 100,
			Position: 2,
			Mobility: 10,
			Corner:   100,
		},
		EndgameEmpties: DefaultEndgameEmpties,
	}
}

// PositionalConfig only uses the weight table, like a greedy player that chases good squares.
func PositionalConfig() Config {
	return Uniform(Weights{Position: 1})
}

// Uniform uses the same weights in every phase.
func Uniform(w Weights) Config {
	return Config{
		Midgame:        w,
		Endgame:        w,
		EndgameEmpties: 0,
	}
}

// Validate checks the weights of both phases and the phase threshold.
func (c Config) Validate() error {
	if err := c.Midgame.Validate(); err != nil {
		return fmt.Errorf("midgame: %w", err)
	}

	if err := c.Endgame.Validate(); err != nil {
		return fmt.Errorf("endgame: %w", err)
	}

	if c.EndgameEmpties < 0 || c.EndgameEmpties > 60 {
		return errors.New("endgame_empties must be between 0 and 60")
	}

	return nil
}

// WeightsFor returns the weights used for a board with the given number of empty squares.
func (c Config) WeightsFor(empties int) Weights {
	if empties <= c.EndgameEmpties {
		return c.Endgame
	}
	return c.Midgame
}

// ParseConfig parses a JSON weight configuration. Fields missing from a phase keep their default values.
// A bare Weights object (without phases) is applied to both phases, missing weights are zero.
func ParseConfig(data []byte) (Config, error) {
	var phased struct {
		Config
		Weights
	}
	phased.Config = DefaultConfig()

	if err := json.Unmarshal(data, &phased); err != nil {
		return Config{}, fmt.Errorf("failed to parse weights: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse weights: %w", err)
	}

	cfg := phased.Config
	_, hasMidgame := raw["midgame"]
	_, hasEndgame := raw["endgame"]

	if !hasMidgame && !hasEndgame && hasAnyWeight(raw) {
		cfg = Uniform(phased.Weights)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func hasAnyWeight(raw map[string]json.RawMessage) bool {
	for _, key := range []string{"material_weight", "position_weight", "mobility_weight", "corner_weight"} {
		if _, ok := raw[key]; ok {
			return true
		}
	}
	return false
}

// Fingerprint returns a short stable description of the configuration, used in cache keys.
func (c Config) Fingerprint() string {
	return fmt.Sprintf(
		"%d.%d.%d.%d/%d.%d.%d.%d/%d",
		c.Midgame.Material, c.Midgame.Position, c.Midgame.Mobility, c.Midgame.Corner,
		c.Endgame.Material, c.Endgame.Position, c.Endgame.Mobility, c.Endgame.Corner,
		c.EndgameEmpties,
	)
}

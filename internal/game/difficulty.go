package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lk16/reversi/internal/eval"
	"github.com/lk16/reversi/internal/search"
)

// ErrUnknownDifficulty is returned by DifficultyByName for names without a preset.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty bundles the knobs that control the strength of the engine.
type Difficulty struct {
	Name       string
	Depth      int
	TimeBudget time.Duration
	Weights    eval.Config
}

// Easy plays greedily, picking the square with the best table weight.
func Easy() Difficulty {
	return Difficulty{
		Name:    "easy",
		Depth:   1,
		Weights: eval.PositionalConfig(),
	}
}

// Medium looks four plies ahead.
func Medium() Difficulty {
	return Difficulty{
		Name:       "medium",
		Depth:      4,
		TimeBudget: 5 * time.Second,
		Weights:    eval.DefaultConfig(),
	}
}

// Hard searches as deep as it can in two seconds, up to depth 8.
func Hard() Difficulty {
	return Difficulty{
		Name:       "hard",
		Depth:      search.DefaultMaxDepth,
		TimeBudget: search.DefaultTimeBudget,
		Weights:    eval.DefaultConfig(),
	}
}

// Difficulties returns all presets from weakest to strongest.
func Difficulties() []Difficulty {
	return []Difficulty{Easy(), Medium(), Hard()}
}

// DifficultyByName returns the preset with the given name, ignoring case.
func DifficultyByName(name string) (Difficulty, error) {
	for _, difficulty := range Difficulties() {
		if strings.EqualFold(difficulty.Name, name) {
			return difficulty, nil
		}
	}

	return Difficulty{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
}

// Options returns base with the depth, time budget and weights of the difficulty.
func (d Difficulty) Options(base search.Options) search.Options {
	base.MaxDepth = d.Depth
	base.TimeBudget = d.TimeBudget
	base.Weights = d.Weights
	return base
}

// CustomName is the name of the difficulty configured by the operator.
const CustomName = "custom"

// Lookup returns a function that resolves preset names. An empty name or CustomName resolves to custom.
func Lookup(custom Difficulty) func(name string) (Difficulty, error) {
	custom.Name = CustomName

	return func(name string) (Difficulty, error) {
		if name == "" || strings.EqualFold(name, CustomName) {
			return custom, nil
		}
		return DifficultyByName(name)
	}
}

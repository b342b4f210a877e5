package connectfour

import (
	"github.com/gorgonia/connectfour/game"
	"github.com/gorgonia/connectfour/mcts"
)

// Config configures a Tuner: two searches that play each other, and what to do with the results.
type Config struct {
	Name string

	// A is the incumbent's search config, B is the first challenger's.
	A, B mcts.Config

	// UpdateThreshold is the share of decisive games the challenger has to win to replace the incumbent.
	UpdateThreshold float64

	// Step is the largest change made to the exploration constant when a new challenger is created.
	Step float32

	// Seed seeds the choice of first mover and of new challengers. 0 seeds from the clock.
	Seed int64

	// extensions
	OutputEncoder OutputEncoder
}

// DefaultConfig returns a config where both sides use the default search and challengers vary C by up to 0.5.
func DefaultConfig() Config {
	return Config{
		Name:            "Connect Four",
		A:               mcts.DefaultConfig(),
		B:               mcts.DefaultConfig(),
		UpdateThreshold: 0.55,
		Step:            0.5,
	}
}

func (c Config) IsValid() bool {
	return c.A.IsValid() && c.B.IsValid() && c.UpdateThreshold > 0 && c.UpdateThreshold <= 1 && c.Step >= 0
}

// OutputEncoder encodes the entire meta state as whatever.
//
// An example OutputEncoder is the GifEncoder. Another example would be a logger.
type OutputEncoder interface {
	Encode(ms game.MetaState) error
	Flush() error
}

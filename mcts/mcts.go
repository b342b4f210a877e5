package mcts

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gorgonia/connectfour/game"
)

// Utilities of a finished rollout. They are scored from White's point of view at every node,
// regardless of who is to move there, and the same reward is added all the way up to the root.
//
// Note that the tree policy therefore maximizes White's results at every depth, including the plies
// where Black is to move. There is no per-ply perspective flip.
const (
	BlackWinUtility float32 = 0
	WhiteWinUtility float32 = 1
	DrawUtility     float32 = 0.5
)

// DefaultExploration is the exploration constant C of UCB1, √2.
const DefaultExploration float32 = math32.Sqrt2

// Config is the structure to configure a search.
type Config struct {
	// Exploration is the constant C in the UCB1 formula. Larger values favour less visited nodes.
	Exploration float32

	// Iterations is the iteration budget of a search. Each iteration is exactly one rollout.
	Iterations int

	// Seed seeds the random number generator used for expansion and rollouts. 0 seeds it from the clock.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		Exploration: DefaultExploration,
		Iterations:  1000,
	}
}

func (c Config) IsValid() bool {
	return c.Iterations >= 1 && c.Exploration >= 0 && !math32.IsInf(c.Exploration, 0)
}

// IllegalSearchError is returned when a search is asked for something it cannot do,
// such as finding a move on a finished board.
type IllegalSearchError struct {
	Reason string
}

func (err *IllegalSearchError) Error() string { return fmt.Sprintf("Illegal search: %s", err.Reason) }

// Utility maps the outcome of a rollout to a reward.
func Utility(o game.Outcome) float32 {
	switch o {
	case game.BlackWins:
		return BlackWinUtility
	case game.WhiteWins:
		return WhiteWinUtility
	case game.Draw:
		return DrawUtility
	}
	panic(fmt.Sprintf("no utility for %v", o))
}

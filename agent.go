package connectfour

import (
	"github.com/gorgonia/connectfour/game"
	"github.com/gorgonia/connectfour/game/c4"
	"github.com/gorgonia/connectfour/mcts"
)

// An Agent is an AI player: a search and the colour it currently plays.
type Agent struct {
	MCTS   *mcts.MCTS
	Player game.Player

	// Statistics
	Wins float32
	Loss float32
	Draw float32

	name string
}

// NewAgent creates a new agent with its own search.
func NewAgent(name string, conf mcts.Config) *Agent {
	return &Agent{
		MCTS: mcts.New(conf),
		name: name,
	}
}

func (a *Agent) Name() string { return a.name }

// Search searches the board and returns the column to play for the player to move.
//
// Searches score every rollout for White, so when Black is to move the agent searches the colour swapped board
// instead. The column is the same on both boards.
func (a *Agent) Search(b c4.Board) (game.Single, error) {
	if b.ToMove() == game.BlackP {
		b = b.SwapColours()
	}
	return a.MCTS.Search(b)
}

// Games returns the number of games the agent has finished.
func (a *Agent) Games() float32 { return a.Wins + a.Loss + a.Draw }

// record tallies a finished game.
func (a *Agent) record(o game.Outcome) {
	switch {
	case o == game.Draw:
		a.Draw++
	case o.Winner() == a.Player:
		a.Wins++
	default:
		a.Loss++
	}
}

func (a *Agent) resetStats() {
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
}

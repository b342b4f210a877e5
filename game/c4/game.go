package c4

import (
	"fmt"

	"github.com/gorgonia/connectfour/game"
)

// Game is a game in progress: the sequence of boards from the empty board to the current one.
// It is what drivers hold on to; searches only ever see a single Board.
type Game struct {
	boards []Board
}

// NewGame creates a new game on an empty board.
func NewGame() *Game {
	boards := make([]Board, 1, Cells+1)
	boards[0] = New()
	return &Game{boards: boards}
}

// Board returns the current board.
func (g *Game) Board() Board { return g.boards[len(g.boards)-1] }

// ToMove returns the player to move on the current board.
func (g *Game) ToMove() game.Player { return g.Board().ToMove() }

// MoveNumber returns the number of moves played so far.
func (g *Game) MoveNumber() int { return len(g.boards) - 1 }

// Apply plays the column on the current board.
func (g *Game) Apply(col game.Single) error {
	next, err := g.Board().ApplyMove(col)
	if err != nil {
		return err
	}
	g.boards = append(g.boards, next)
	return nil
}

// UndoLastMove takes back the last move. It returns false if there is nothing to undo.
func (g *Game) UndoLastMove() bool {
	if len(g.boards) == 1 {
		return false
	}
	g.boards = g.boards[:len(g.boards)-1]
	return true
}

// History returns the moves played so far, in order.
func (g *Game) History() []game.PlayerMove {
	retVal := make([]game.PlayerMove, 0, len(g.boards)-1)
	for _, b := range g.boards[1:] {
		retVal = append(retVal, b.LastMove())
	}
	return retVal
}

// Reset resets the game to an empty board.
func (g *Game) Reset() { g.boards = g.boards[:1] }

func (g *Game) Format(s fmt.State, c rune) { g.Board().Format(s, c) }

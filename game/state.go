package game

import (
	"fmt"
)

type Colour int32

const (
	None Colour = iota
	Black
	White
)

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		}
	case 's': // used in board games
		switch cl {
		case None:
			fmt.Fprint(s, "·")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		}
	}
}

// Player represents a player. It's also a colour.
//
// Black always moves first.
type Player Colour

const (
	NoPlayer = Player(None)
	BlackP   = Player(Black)
	WhiteP   = Player(White)
)

// Opponent returns the other player. NoPlayer has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case BlackP:
		return WhiteP
	case WhiteP:
		return BlackP
	}
	return NoPlayer
}

func (p Player) Format(s fmt.State, c rune) { Colour(p).Format(s, c) }

// PlayerMove is a tuple indicating the player and the move to be made.
type PlayerMove struct {
	Player
	Single
}

// Eq returns true if both are equal
func (p PlayerMove) Eq(other PlayerMove) bool {
	return p.Player == other.Player && p.Single == other.Single
}

func (p PlayerMove) Format(s fmt.State, c rune) { fmt.Fprintf(s, "%v@%d", p.Player, p.Single) }

// Single represents a move as a single number. In column games it is the column index.
//		- -1 represents "no move" (e.g. the move that led to the initial board)
type Single int32

// NoMove is the move recorded on a board that was not produced by a move.
const NoMove Single = -1

// IsValid returns true if the Single refers to an actual move.
func (c Single) IsValid() bool { return c >= 0 }

// Outcome is the result of a game as seen from the board.
type Outcome int32

const (
	InProgress Outcome = iota
	BlackWins
	WhiteWins
	Draw
)

// WinFor returns the outcome in which p has won.
func WinFor(p Player) Outcome {
	switch p {
	case BlackP:
		return BlackWins
	case WhiteP:
		return WhiteWins
	}
	panic(fmt.Sprintf("no outcome for a win by %v", p))
}

// Ended returns true if the game is over.
func (o Outcome) Ended() bool { return o != InProgress }

// Winner returns the winning player. Draws and unfinished games have no winner.
func (o Outcome) Winner() Player {
	switch o {
	case BlackWins:
		return BlackP
	case WhiteWins:
		return WhiteP
	}
	return NoPlayer
}

// Swap returns the outcome with the players' roles reversed.
func (o Outcome) Swap() Outcome {
	switch o {
	case BlackWins:
		return WhiteWins
	case WhiteWins:
		return BlackWins
	}
	return o
}

func (o Outcome) Format(s fmt.State, c rune) {
	switch o {
	case InProgress:
		fmt.Fprint(s, "InProgress")
	case BlackWins, WhiteWins:
		if c == 's' {
			fmt.Fprintf(s, "Win(%s)", o.Winner())
			return
		}
		fmt.Fprintf(s, "Win(%v)", o.Winner())
	case Draw:
		fmt.Fprint(s, "Draw")
	default:
		fmt.Fprintf(s, "Outcome(%d)", int32(o))
	}
}

// State is any game position that can report back its status.
type State interface {
	ToMove() Player      // returns the next player to move
	LastMove() PlayerMove // returns the move that produced this position
	MoveNumber() int     // returns count of moves so far that led to this point.
	Outcome() Outcome    // has the game ended? if yes, how?

	fmt.Formatter
}

// MetaState describes a game in progress inside a match or tournament.
type MetaState interface {
	Name() string // name of the game
	Epoch() int
	GameNumber() int
	State() State
}

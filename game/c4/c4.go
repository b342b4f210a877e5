package c4

import (
	"fmt"

	"github.com/gorgonia/connectfour/game"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

const (
	Rows    = 6
	Cols    = 7
	Connect = 4 // how many in a row to be considered a win
	Cells   = Rows * Cols
)

var (
	_ game.State = Board{}
)

// Board is a Connect Four position. Boards are values: applying a move returns a new Board
// and leaves the receiver untouched, so a Board may be shared freely.
//
// Row 0 is the bottom row. Tokens fall to the lowest empty cell of a column.
type Board struct {
	cells   [Cells]game.Colour
	heights [Cols]int8 // number of tokens in each column

	toMove  game.Player
	outcome game.Outcome // computed once, at construction
	last    game.Single
	moves   int
}

// New creates an empty board with Black to move.
func New() Board {
	return Board{
		toMove:  game.BlackP,
		outcome: game.InProgress,
		last:    game.NoMove,
	}
}

// FromColours creates a board from a grid of colours, listed top row first (i.e. as the board is drawn).
// The grid has to obey gravity: no token may float above an empty cell.
func FromColours(cells []game.Colour, toMove game.Player) (Board, error) {
	if len(cells) != Cells {
		return Board{}, errors.Errorf("expected %d cells, got %d", Cells, len(cells))
	}
	if toMove != game.BlackP && toMove != game.WhiteP {
		return Board{}, errors.Errorf("%v cannot be the player to move", toMove)
	}

	b := New()
	b.toMove = toMove
	for i, c := range cells {
		switch c {
		case game.None:
			continue
		case game.Black, game.White:
		default:
			return Board{}, errors.Errorf("unknown colour %d at cell %d", int32(c), i)
		}
		row, col := Rows-1-i/Cols, i%Cols
		b.cells[idx(row, col)] = c
		b.moves++
	}

	for col := 0; col < Cols; col++ {
		var height int8
		for row := 0; row < Rows; row++ {
			if b.cells[idx(row, col)] == game.None {
				break
			}
			height++
		}
		for row := int(height); row < Rows; row++ {
			if b.cells[idx(row, col)] != game.None {
				return Board{}, errors.Errorf("token at row %d, column %d is floating", row, col)
			}
		}
		b.heights[col] = height
	}
	b.outcome = b.checkOutcome()
	return b, nil
}

func idx(row, col int) int { return row*Cols + col }

// ToMove returns the player whose turn it is.
func (b Board) ToMove() game.Player { return b.toMove }

// Outcome returns the cached outcome of the board.
func (b Board) Outcome() game.Outcome { return b.outcome }

// IsTerminal returns true if the game on this board is over.
func (b Board) IsTerminal() bool { return b.outcome.Ended() }

// MoveNumber returns the number of tokens on the board.
func (b Board) MoveNumber() int { return b.moves }

// LastMove returns the move that produced this board. Boards not produced by a move return game.NoMove.
func (b Board) LastMove() game.PlayerMove {
	if !b.last.IsValid() {
		return game.PlayerMove{Player: game.NoPlayer, Single: game.NoMove}
	}
	return game.PlayerMove{Player: b.toMove.Opponent(), Single: b.last}
}

// At returns the colour at the given row and column. Row 0 is the bottom row.
func (b Board) At(row, col int) game.Colour { return b.cells[idx(row, col)] }

// Height returns the number of tokens in the column.
func (b Board) Height(col int) int { return int(b.heights[col]) }

// Check returns an error if the column cannot be played.
func (b Board) Check(col game.Single) error {
	switch {
	case col < 0 || col >= Cols:
		return errors.WithStack(&InvalidMoveError{Column: col, Reason: "column out of range"})
	case b.outcome.Ended():
		return errors.WithStack(&InvalidMoveError{Column: col, Reason: "game has ended"})
	case b.heights[col] >= Rows:
		return errors.WithStack(&InvalidMoveError{Column: col, Reason: "column is full"})
	}
	return nil
}

// ApplyMove drops a token of the player to move into the column and returns the resulting board.
func (b Board) ApplyMove(col game.Single) (Board, error) {
	if err := b.Check(col); err != nil {
		return Board{}, err
	}

	next := b
	row := int(b.heights[col])
	next.cells[idx(row, int(col))] = game.Colour(b.toMove)
	next.heights[col]++
	next.toMove = b.toMove.Opponent()
	next.last = col
	next.moves++
	next.outcome = next.checkOutcome()
	return next, nil
}

// LegalMoves returns the playable columns in ascending order. A terminal board has none.
func (b Board) LegalMoves() []game.Single { return b.AppendLegalMoves(nil) }

// AppendLegalMoves appends the playable columns to dst. It allows callers to reuse a buffer.
func (b Board) AppendLegalMoves(dst []game.Single) []game.Single {
	if b.outcome.Ended() {
		return dst
	}
	for col := 0; col < Cols; col++ {
		if b.heights[col] < Rows {
			dst = append(dst, game.Single(col))
		}
	}
	return dst
}

// SwapColours returns the board with every token's colour swapped, as well as the player to move.
func (b Board) SwapColours() Board {
	swapped := b
	for i, c := range b.cells {
		switch c {
		case game.Black:
			swapped.cells[i] = game.White
		case game.White:
			swapped.cells[i] = game.Black
		}
	}
	swapped.toMove = b.toMove.Opponent()
	swapped.outcome = swapped.checkOutcome()
	return swapped
}

// Colours returns a copy of the grid, top row first.
func (b Board) Colours() []game.Colour {
	retVal := make([]game.Colour, 0, Cells)
	for row := Rows - 1; row >= 0; row-- {
		retVal = append(retVal, b.cells[idx(row, 0):idx(row, 0)+Cols]...)
	}
	return retVal
}

// Tensor returns the grid as a (Rows, Cols) tensor, top row first.
func (b Board) Tensor() *tensor.Dense {
	return tensor.New(tensor.WithShape(Rows, Cols), tensor.WithBacking(b.Colours()))
}

func (b Board) Format(s fmt.State, c rune) {
	switch c {
	case 's', 'v':
		iter, err := native.Matrix(b.Tensor())
		if err != nil {
			panic(err)
		}
		for _, row := range iter.([][]game.Colour) {
			fmt.Fprint(s, "⎢ ")
			for _, col := range row {
				fmt.Fprintf(s, "%s ", col)
			}
			fmt.Fprint(s, "⎥\n")
		}
	}
}

type direction struct{ dr, dc int }

// vertical, horizontal, and the two diagonals. Only the "forwards" half of each line is walked
// because the scan visits every cell.
var directions = [...]direction{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// checkOutcome scans every occupied cell for a line of Connect same-coloured tokens.
func (b *Board) checkOutcome() game.Outcome {
	var hasEmpty bool
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			c := b.cells[idx(row, col)]
			if c == game.None {
				hasEmpty = true
				continue
			}
			for _, d := range directions {
				if b.connected(row, col, d, c) {
					return game.WinFor(game.Player(c))
				}
			}
		}
	}
	if hasEmpty {
		return game.InProgress
	}
	return game.Draw
}

// connected checks the Connect-1 cells after (row, col) in direction d. Falling off the board simply means no line.
func (b *Board) connected(row, col int, d direction, c game.Colour) bool {
	for i := 1; i < Connect; i++ {
		r, k := row+i*d.dr, col+i*d.dc
		if r < 0 || r >= Rows || k < 0 || k >= Cols {
			return false
		}
		if b.cells[idx(r, k)] != c {
			return false
		}
	}
	return true
}

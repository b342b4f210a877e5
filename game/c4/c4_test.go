package c4

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorgonia/connectfour/game"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	X = game.Black
	O = game.White
	Z = game.None
)

var outcomeTests = []struct {
	name  string
	cells []game.Colour
	want  game.Outcome
}{
	{"in progress", []game.Colour{
		X, Z, Z, Z, Z, Z, Z,
		O, Z, Z, Z, Z, Z, Z,
		O, Z, Z, Z, Z, Z, Z,
		X, Z, Z, Z, Z, Z, Z,
		O, O, Z, Z, X, Z, X,
		X, O, Z, O, X, Z, X,
	}, game.InProgress},

	{"full board", []game.Colour{
		X, O, X, O, X, O, O,
		X, O, O, O, X, X, O,
		X, X, O, X, O, X, O,
		O, X, O, O, X, X, X,
		O, X, X, O, X, O, X,
		X, O, O, O, X, O, X,
	}, game.Draw},

	{"diagonal", []game.Colour{
		Z, Z, Z, Z, Z, Z, Z,
		Z, Z, Z, Z, Z, Z, Z,
		Z, Z, Z, X, Z, Z, Z,
		Z, Z, X, O, Z, Z, Z,
		Z, X, O, O, Z, Z, Z,
		X, O, O, X, Z, Z, Z,
	}, game.BlackWins},

	{"diagonal2", []game.Colour{
		Z, Z, Z, Z, Z, Z, Z,
		Z, Z, Z, Z, Z, Z, Z,
		Z, Z, Z, O, Z, Z, Z,
		Z, Z, Z, X, O, Z, X,
		Z, Z, Z, X, X, O, X,
		Z, Z, Z, X, X, X, O,
	}, game.WhiteWins},

	{"vertical", []game.Colour{
		Z, Z, Z, Z, Z, Z, Z,
		Z, Z, Z, Z, Z, Z, Z,
		Z, Z, Z, Z, O, Z, Z,
		Z, Z, Z, Z, O, Z, Z,
		Z, X, Z, Z, O, Z, Z,
		Z, X, Z, X, O, Z, X,
	}, game.WhiteWins},

	{"horizontal", []game.Colour{
		Z, Z, Z, Z, Z, Z, Z,
		Z, Z, Z, Z, Z, Z, Z,
		Z, Z, Z, Z, Z, Z, Z,
		Z, Z, Z, Z, Z, Z, Z,
		Z, Z, O, O, O, Z, Z,
		O, X, X, X, X, Z, Z,
	}, game.BlackWins},

	{"top right corner", []game.Colour{
		Z, Z, Z, X, X, X, X,
		Z, Z, Z, O, O, O, X,
		Z, Z, Z, X, X, O, O,
		Z, Z, Z, O, O, X, X,
		Z, Z, Z, X, X, O, O,
		Z, Z, Z, O, O, X, X,
	}, game.BlackWins},
}

func TestBoard_Outcome(t *testing.T) {
	for _, tc := range outcomeTests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := FromColours(tc.cells, game.BlackP)
			require.NoError(t, err)
			assert.Equal(t, tc.want, b.Outcome(), "\n%v", b)
			assert.Equal(t, tc.want.Ended(), b.IsTerminal())
		})
	}
}

func TestBoard_OutcomeColourSwap(t *testing.T) {
	for _, tc := range outcomeTests {
		b, err := FromColours(tc.cells, game.BlackP)
		require.NoError(t, err)
		swapped := b.SwapColours()
		assert.Equal(t, b.Outcome().Swap(), swapped.Outcome(), "%v: swapped outcome", tc.name)
		assert.Equal(t, game.WhiteP, swapped.ToMove())
		assert.Equal(t, b, swapped.SwapColours(), "%v: swapping twice is the identity", tc.name)
	}

	// random positions, including ones that end in a win
	r := rand.New(rand.NewSource(1337))
	for i := 0; i < 200; i++ {
		b := randomBoard(r, r.Intn(Cells+1))
		assert.Equal(t, b.Outcome().Swap(), b.SwapColours().Outcome(), "\n%v", b)
	}
}

func TestBoard_ApplyMove(t *testing.T) {
	t.Run("completing a line of four", func(t *testing.T) {
		b, err := FromColours([]game.Colour{
			Z, Z, Z, Z, Z, Z, Z,
			Z, Z, Z, Z, Z, Z, Z,
			Z, Z, Z, Z, Z, Z, Z,
			Z, Z, Z, Z, Z, Z, Z,
			Z, Z, Z, Z, Z, Z, Z,
			X, X, X, Z, Z, Z, Z,
		}, game.BlackP)
		require.NoError(t, err)
		require.Equal(t, game.InProgress, b.Outcome())

		next, err := b.ApplyMove(3)
		require.NoError(t, err)
		assert.Equal(t, game.BlackWins, next.Outcome())
		assert.True(t, next.IsTerminal())
		assert.Empty(t, next.LegalMoves())
		assert.Equal(t, game.PlayerMove{Player: game.BlackP, Single: 3}, next.LastMove())
	})

	t.Run("gravity and turns", func(t *testing.T) {
		b := New()
		var err error
		for i := 0; i < 3; i++ {
			b, err = b.ApplyMove(2)
			require.NoError(t, err)
		}
		assert.Equal(t, X, b.At(0, 2))
		assert.Equal(t, O, b.At(1, 2))
		assert.Equal(t, X, b.At(2, 2))
		assert.Equal(t, Z, b.At(3, 2))
		assert.Equal(t, 3, b.Height(2))
		assert.Equal(t, 3, b.MoveNumber())
		assert.Equal(t, game.WhiteP, b.ToMove())
	})

	t.Run("receiver is untouched", func(t *testing.T) {
		b := New()
		before := b
		next, err := b.ApplyMove(4)
		require.NoError(t, err)
		assert.True(t, cmp.Equal(before, b, cmp.AllowUnexported(Board{})), cmp.Diff(before, b, cmp.AllowUnexported(Board{})))
		assert.Equal(t, game.NoMove, b.LastMove().Single)
		assert.NotEqual(t, b, next)
	})

	t.Run("deterministic", func(t *testing.T) {
		b := New()
		for _, col := range []game.Single{3, 3, 4, 2, 6} {
			a1, err1 := b.ApplyMove(col)
			a2, err2 := b.ApplyMove(col)
			require.NoError(t, err1)
			require.NoError(t, err2)
			if diff := cmp.Diff(a1, a2, cmp.AllowUnexported(Board{})); diff != "" {
				t.Fatalf("ApplyMove(%d) is not deterministic (-first +second):\n%s", col, diff)
			}
			b = a1
		}
	})
}

func TestBoard_InvalidMoves(t *testing.T) {
	full := New()
	var err error
	for i := 0; i < Rows; i++ {
		full, err = full.ApplyMove(0)
		require.NoError(t, err)
	}

	won, err := FromColours(outcomeTests[5].cells, game.WhiteP)
	require.NoError(t, err)

	tests := []struct {
		name string
		b    Board
		col  game.Single
	}{
		{"negative column", New(), -1},
		{"column too large", New(), Cols},
		{"full column", full, 0},
		{"terminal board", won, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.b.ApplyMove(tc.col)
			require.Error(t, err)
			var ime *InvalidMoveError
			require.True(t, errors.As(err, &ime), "expected an InvalidMoveError. Got %T", err)
			assert.Equal(t, tc.col, ime.Column)
			assert.Error(t, tc.b.Check(tc.col))
		})
	}
}

func TestBoard_LegalMoves(t *testing.T) {
	assert.Equal(t, []game.Single{0, 1, 2, 3, 4, 5, 6}, New().LegalMoves())

	b := New()
	var err error
	for i := 0; i < Rows; i++ {
		b, err = b.ApplyMove(5)
		require.NoError(t, err)
	}
	assert.Equal(t, []game.Single{0, 1, 2, 3, 4, 6}, b.LegalMoves())

	draw, err := FromColours(outcomeTests[1].cells, game.BlackP)
	require.NoError(t, err)
	assert.Empty(t, draw.LegalMoves())
	assert.Equal(t, game.Draw, draw.Outcome())

	buf := make([]game.Single, 0, Cols)
	assert.Equal(t, New().LegalMoves(), New().AppendLegalMoves(buf))
}

func TestBoard_LegalMovesIffTerminal(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	for i := 0; i < 100; i++ {
		b := New()
		for {
			moves := b.LegalMoves()
			require.Equal(t, b.IsTerminal(), len(moves) == 0, "\n%v", b)
			if len(moves) == 0 {
				break
			}
			var err error
			b, err = b.ApplyMove(moves[r.Intn(len(moves))])
			require.NoError(t, err)
			require.LessOrEqual(t, b.MoveNumber(), Cells)
		}
	}
}

func TestFromColours(t *testing.T) {
	_, err := FromColours(make([]game.Colour, Cells-1), game.BlackP)
	assert.Error(t, err, "short grids are rejected")

	_, err = FromColours(make([]game.Colour, Cells), game.NoPlayer)
	assert.Error(t, err, "somebody has to move")

	bad := make([]game.Colour, Cells)
	bad[Cells-1] = game.Colour(7)
	_, err = FromColours(bad, game.BlackP)
	assert.Error(t, err, "unknown colours are rejected")

	floating := make([]game.Colour, Cells)
	floating[0] = X // top left corner, nothing below
	_, err = FromColours(floating, game.BlackP)
	assert.Error(t, err, "floating tokens are rejected")

	b, err := FromColours(outcomeTests[0].cells, game.WhiteP)
	require.NoError(t, err)
	assert.Equal(t, outcomeTests[0].cells, b.Colours())
	assert.Equal(t, 13, b.MoveNumber())
	assert.Equal(t, game.NoMove, b.LastMove().Single)
	assert.Equal(t, []int{Rows, Cols}, []int(b.Tensor().Shape()))
}

func TestBoard_Format(t *testing.T) {
	b, err := New().ApplyMove(3)
	require.NoError(t, err)
	b, err = b.ApplyMove(3)
	require.NoError(t, err)

	s := fmt.Sprintf("%s", b)
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	require.Len(t, lines, Rows)
	assert.Equal(t, "⎢ · · · · · · · ⎥", lines[0])
	assert.Equal(t, "⎢ · · · O · · · ⎥", lines[4])
	assert.Equal(t, "⎢ · · · X · · · ⎥", lines[5])
}

func TestGame(t *testing.T) {
	g := NewGame()
	require.NoError(t, g.Apply(3))
	require.NoError(t, g.Apply(4))
	require.Error(t, g.Apply(9))

	assert.Equal(t, 2, g.MoveNumber())
	assert.Equal(t, game.BlackP, g.ToMove())
	assert.Equal(t, []game.PlayerMove{{Player: game.BlackP, Single: 3}, {Player: game.WhiteP, Single: 4}}, g.History())

	require.True(t, g.UndoLastMove())
	assert.Equal(t, game.WhiteP, g.ToMove())
	assert.Equal(t, Z, g.Board().At(0, 4))

	g.Reset()
	assert.Equal(t, New(), g.Board())
	assert.False(t, g.UndoLastMove())
}

func randomBoard(r *rand.Rand, moves int) Board {
	b := New()
	for i := 0; i < moves; i++ {
		legal := b.LegalMoves()
		if len(legal) == 0 {
			break
		}
		b, _ = b.ApplyMove(legal[r.Intn(len(legal))])
	}
	return b
}

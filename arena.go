package connectfour

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gorgonia/connectfour/game"
	"github.com/gorgonia/connectfour/game/c4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Arena is where two agents play each other. Which agent moves first is decided by a coin toss every game.
type Arena struct {
	r     *rand.Rand
	board c4.Board
	A, B  *Agent

	// state
	currentPlayer *Agent
	log           zerolog.Logger

	name       string
	epoch      int // which round of games is this
	gameNumber int // which game is this in the round
}

var _ game.MetaState = &Arena{}

// MakeArena makes an arena for the two agents.
func MakeArena(a, b *Agent, name string, seed int64) Arena {
	if name == "" {
		name = "UNKNOWN GAME"
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return Arena{
		r:     rand.New(rand.NewSource(seed)),
		board: c4.New(),
		A:     a,
		B:     b,
		log:   zerolog.Nop(),
		name:  name,
	}
}

func NewArena(a, b *Agent, name string, seed int64) *Arena {
	ar := MakeArena(a, b, name, seed)
	return &ar
}

// SetLogger sets the logger for the arena. By default nothing is logged.
func (a *Arena) SetLogger(l zerolog.Logger) { a.log = l }

// Play plays a game to the end and returns the outcome and the moves that were played.
// Every position after a move is passed to the encoder, if there is one.
func (a *Arena) Play(enc OutputEncoder) (outcome game.Outcome, moves []game.PlayerMove, err error) {
	if a.r.Intn(2) == 0 {
		a.A.Player = game.BlackP
		a.B.Player = game.WhiteP
		a.currentPlayer = a.A
	} else {
		a.A.Player = game.WhiteP
		a.B.Player = game.BlackP
		a.currentPlayer = a.B
	}
	a.board = c4.New()
	a.log.Debug().Str("black", a.currentPlayer.Name()).Int("game", a.gameNumber).Msg("playing")

	moves = make([]game.PlayerMove, 0, c4.Cells)
	for !a.board.IsTerminal() {
		var best game.Single
		if best, err = a.currentPlayer.Search(a.board); err != nil {
			return game.InProgress, moves, errors.WithMessage(err, fmt.Sprintf("%v failed to search", a.currentPlayer.Name()))
		}
		if a.board, err = a.board.ApplyMove(best); err != nil {
			return game.InProgress, moves, errors.WithMessage(err, fmt.Sprintf("%v chose an invalid move", a.currentPlayer.Name()))
		}
		moves = append(moves, a.board.LastMove())
		a.log.Debug().Str("agent", a.currentPlayer.Name()).Str("move", fmt.Sprintf("%v", a.board.LastMove())).Msg("moved")

		a.switchPlayer()
		if enc != nil {
			if err = enc.Encode(a); err != nil {
				return game.InProgress, moves, errors.WithMessage(err, "Unable to encode position")
			}
		}
	}

	outcome = a.board.Outcome()
	a.A.record(outcome)
	a.B.record(outcome)
	a.log.Info().Int("epoch", a.epoch).Int("game", a.gameNumber).Str("outcome", fmt.Sprintf("%v", outcome)).Int("moves", len(moves)).Msg("game over")
	return outcome, moves, nil
}

// Run plays a number of games. Statistics are recorded after each game.
func (a *Arena) Run(games int, enc OutputEncoder, stats *Statistics) error {
	for a.gameNumber = 0; a.gameNumber < games; a.gameNumber++ {
		if _, _, err := a.Play(enc); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("Game %d", a.gameNumber))
		}
		if stats != nil {
			stats.update(a.A)
			stats.update(a.B)
		}
	}
	a.log.Info().
		Str("a", a.A.Name()).Float32("a_wins", a.A.Wins).Float32("a_loss", a.A.Loss).Float32("a_draw", a.A.Draw).
		Str("b", a.B.Name()).Float32("b_wins", a.B.Wins).Float32("b_loss", a.B.Loss).Float32("b_draw", a.B.Draw).
		Msg("round done")
	return nil
}

func (a *Arena) Epoch() int            { return a.epoch }
func (a *Arena) GameNumber() int       { return a.gameNumber }
func (a *Arena) Name() string          { return a.name }
func (a *Arena) State() game.State     { return a.board }
func (a *Arena) Board() c4.Board       { return a.board }
func (a *Arena) CurrentPlayer() *Agent { return a.currentPlayer }

func (a *Arena) switchPlayer() {
	switch a.currentPlayer {
	case a.A:
		a.currentPlayer = a.B
	case a.B:
		a.currentPlayer = a.A
	}
}

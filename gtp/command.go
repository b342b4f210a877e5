package gtp

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gorgonia/connectfour/game"
	"github.com/gorgonia/connectfour/game/c4"
	"github.com/pkg/errors"
)

type Command interface {
	Do(id int, args []string, e *Engine) (int, string, error)
}

type stdlib func(e *Engine) string

type stdlib2 func(e *Engine, args []string) (string, error)

func (f stdlib) Do(id int, args []string, e *Engine) (int, string, error) {
	str := f(e)
	return id, str, nil
}

func (f stdlib2) Do(id int, args []string, e *Engine) (int, string, error) {
	str, err := f(e, args)
	return id, str, err
}

func protocolVersion(e *Engine) string { return "2" }
func name(e *Engine) string            { return e.name }
func version(e *Engine) string         { return e.version }

func listCommands(e *Engine) string {
	cmds := make([]string, 0, len(e.known))
	for c := range e.known {
		cmds = append(cmds, c)
	}
	sort.Strings(cmds)
	return strings.Join(cmds, "\n")
}

func quit(e *Engine) string        { e.done = true; return "" }
func clearBoard(e *Engine) string  { e.g.Reset(); return "" }
func showboard(e *Engine) string   { return strings.TrimRight(fmt.Sprintf("\n%v", e.g), "\n") }
func finalStatus(e *Engine) string { return fmt.Sprintf("%v", e.g.Board().Outcome()) }

func legalMoves(e *Engine) string {
	var buf bytes.Buffer
	for i, col := range e.g.Board().LegalMoves() {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(strconv.Itoa(int(col) + 1))
	}
	return buf.String()
}

func undo(e *Engine, args []string) (string, error) {
	if !e.g.UndoLastMove() {
		return "", errors.New("cannot undo")
	}
	return "", nil
}

func knownCommand(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"known_command\"")
	}
	if _, ok := e.known[args[0]]; ok {
		return "true", nil
	}
	return "false", nil
}

// play accepts "play <column>" or "play <colour> <column>". If a colour is given it has to be the player to move.
func play(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"play\"")
	}
	if len(args) > 1 {
		p, err := parsePlayer(args[0])
		if err != nil {
			return "", err
		}
		if p != e.g.ToMove() {
			return "", errors.Errorf("It is %v's turn", e.g.ToMove())
		}
		args = args[1:]
	}

	col, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.Errorf("Unable to parse column %q", args[0])
	}
	if err = e.g.Apply(game.Single(col - 1)); err != nil {
		return "", wireError(err)
	}
	return "", nil
}

// genmove plays the generated move for the player to move and returns its column.
func genmove(e *Engine, args []string) (string, error) {
	if len(args) > 0 {
		p, err := parsePlayer(args[0])
		if err != nil {
			return "", err
		}
		if p != e.g.ToMove() {
			return "", errors.Errorf("It is %v's turn", e.g.ToMove())
		}
	}
	if e.Generate == nil {
		return "", errors.New("Unable to generate moves. No generator found")
	}
	b := e.g.Board()
	if b.IsTerminal() {
		return "", errors.Errorf("The game is over: %v", b.Outcome())
	}

	col, err := e.Generate(b)
	if err != nil {
		return "", err
	}
	if err = e.g.Apply(col); err != nil {
		return "", wireError(err)
	}
	return strconv.Itoa(int(col) + 1), nil
}

func parsePlayer(a string) (game.Player, error) {
	switch a {
	case "b", "black", "x":
		return game.BlackP, nil
	case "w", "white", "o":
		return game.WhiteP, nil
	}
	return game.NoPlayer, errors.Errorf("Unknown colour %q", a)
}

// wireError reports invalid moves with columns numbered from 1.
func wireError(err error) error {
	var ime *c4.InvalidMoveError
	if errors.As(err, &ime) {
		return errors.Errorf("Unable to play column %d: %s", ime.Column+1, ime.Reason)
	}
	return err
}

func StandardLib() map[string]Command {
	return map[string]Command{
		"protocol_version": stdlib(protocolVersion),
		"name":             stdlib(name),
		"version":          stdlib(version),
		"list_commands":    stdlib(listCommands),
		"quit":             stdlib(quit),
		"clear_board":      stdlib(clearBoard),
		"showboard":        stdlib(showboard),
		"legal_moves":      stdlib(legalMoves),
		"final_status":     stdlib(finalStatus),

		"known_command": stdlib2(knownCommand),
		"undo":          stdlib2(undo),
		"play":          stdlib2(play),
		"genmove":       stdlib2(genmove),
	}
}

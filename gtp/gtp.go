package gtp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gorgonia/connectfour/game"
	"github.com/gorgonia/connectfour/game/c4"
	"github.com/pkg/errors"
)

// Engine speaks a GTP-like text protocol over a Connect Four game. Columns are numbered 1 to 7 on the wire.
type Engine struct {
	g *c4.Game

	known map[string]Command

	ch   chan string
	ret  chan string
	done bool

	// Generate picks a column for the player to move. genmove fails if it is nil.
	Generate      func(b c4.Board) (game.Single, error)
	name, version string
}

// New creates an engine for the game. A nil game starts a new one.
func New(g *c4.Game, name, version string, known map[string]Command) *Engine {
	if g == nil {
		g = c4.NewGame()
	}
	if known == nil {
		known = StandardLib()
	}
	return &Engine{
		g:       g,
		known:   known,
		name:    name,
		version: version,
	}
}

// Start runs the engine in a goroutine. Commands are sent on input and responses are received on output.
// Lines that carry no command get no response. output is closed after "quit".
func (e *Engine) Start() (input chan<- string, output <-chan string) {
	e.ch = make(chan string)
	e.ret = make(chan string)
	go e.start()
	return e.ch, e.ret
}

// Serve reads commands line by line from r and writes the responses to w, until "quit" or the end of r.
func (e *Engine) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if resp, ok := e.Exec(scanner.Text()); ok {
			if _, err := io.WriteString(w, resp); err != nil {
				return errors.WithStack(err)
			}
		}
		if e.done {
			return nil
		}
	}
	return errors.WithStack(scanner.Err())
}

// Exec executes a single command line and returns the response. ok is false if the line carries no command.
func (e *Engine) Exec(cmd string) (resp string, ok bool) {
	id, x, args, err := e.parse(cmd)
	if x == nil && err == nil {
		return "", false
	}
	if err != nil {
		return handleErr(id, err), true
	}
	id, result, err := x.Do(id, args, e)
	return handleResult(id, result, err), true
}

func (e *Engine) Game() *c4.Game { return e.g }

func (e *Engine) start() {
	defer close(e.ret)
	for cmd := range e.ch {
		if resp, ok := e.Exec(cmd); ok {
			e.ret <- resp
		}
		if e.done {
			return
		}
	}
}

// refer to this
// https://www.lysator.liu.se/%7Egunnar/gtp/gtp2-spec-draft2/gtp2-spec.html#SECTION00030000000000000000
func (e *Engine) parse(cmd string) (id int, x Command, args []string, err error) {
	cmd = preprocess(cmd)
	tokens := strings.Fields(cmd)
	id = -1
	if len(tokens) == 0 {
		return id, nil, nil, nil
	}
	if id, err = strconv.Atoi(tokens[0]); err == nil {
		// we've consumed ID
		tokens = tokens[1:]
	} else {
		// set err to nil because ID is optional
		err = nil
		id = -1
	}

	if len(tokens) == 0 {
		return id, nil, nil, nil // GNUGo some how does nothing when there are no tokens left. An ID may be passed in but it'll be ignored
	}

	var ok bool
	if x, ok = e.known[tokens[0]]; !ok {
		return id, nil, nil, errors.Errorf("Unknown command %q", tokens[0])
	}
	if len(tokens) > 1 {
		args = tokens[1:]
	}
	return
}

// preprocess drops comments and surrounding whitespace.
func preprocess(a string) string {
	if i := strings.IndexByte(a, '#'); i >= 0 {
		a = a[:i]
	}
	return strings.ToLower(strings.TrimSpace(a))
}

func handleErr(id int, err error) string {
	if id != -1 {
		return fmt.Sprintf("? %d %v\n\n", id, err)
	}
	return fmt.Sprintf("? %v\n\n", err)
}

func handleResult(id int, result string, err error) string {
	if err != nil {
		return handleErr(id, err)
	}

	if id != -1 {
		return fmt.Sprintf("= %d %v\n\n", id, result)
	}
	return fmt.Sprintf("= %v\n\n", result)
}

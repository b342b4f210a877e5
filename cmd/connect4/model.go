package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorgonia/connectfour"
	"github.com/gorgonia/connectfour/game"
	"github.com/gorgonia/connectfour/game/c4"
	"github.com/gorgonia/connectfour/mcts"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
)

// aiMoveMsg is sent when the AI has finished searching.
type aiMoveMsg struct {
	move    game.Single
	stats   []mcts.MoveStat
	elapsed time.Duration
	err     error
}

type model struct {
	g     *c4.Game
	human game.Player
	agent *connectfour.Agent

	cursor   int
	thinking bool
	thoughts []mcts.MoveStat
	elapsed  time.Duration
	err      error

	out *termenv.Output
}

func newModel(g *c4.Game, human game.Player, agent *connectfour.Agent, out *termenv.Output) model {
	return model{
		g:      g,
		human:  human,
		agent:  agent,
		cursor: c4.Cols / 2,
		out:    out,
	}
}

func (m model) Init() tea.Cmd {
	if m.g.ToMove() != m.human {
		return m.think()
	}
	return nil
}

// think searches the current board off the UI loop.
func (m model) think() tea.Cmd {
	b := m.g.Board()
	agent := m.agent
	return func() tea.Msg {
		start := time.Now()
		move, err := agent.Search(b)
		return aiMoveMsg{
			move:    move,
			stats:   agent.MCTS.RootStats(),
			elapsed: time.Since(start),
			err:     err,
		}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" || key == "esc" {
			return m, tea.Quit
		}
		if m.thinking || m.g.Board().IsTerminal() {
			return m, nil
		}
		switch key {
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor < c4.Cols-1 {
				m.cursor++
			}
		case "1", "2", "3", "4", "5", "6", "7":
			m.cursor = int(key[0] - '1')
			return m.drop()
		case "enter", " ":
			return m.drop()
		}
	case aiMoveMsg:
		m.thinking = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if err := m.g.Apply(msg.move); err != nil {
			m.err = err
			return m, nil
		}
		m.thoughts = msg.stats
		m.elapsed = msg.elapsed
		m.err = nil
		log.Info().Msgf("%d iterations took %v. AI chooses column %d", m.agent.MCTS.Iterations, msg.elapsed, msg.move+1)
	}
	return m, nil
}

// drop plays the human's move in the column under the cursor, and hands over to the AI.
func (m model) drop() (tea.Model, tea.Cmd) {
	if err := m.g.Apply(game.Single(m.cursor)); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	if m.g.Board().IsTerminal() {
		return m, nil
	}
	m.thinking = true
	return m, m.think()
}

func (m model) View() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Connect Four. You are %s, the AI is %s.\n\n", m.glyph(game.Colour(m.human)), m.glyph(game.Colour(m.human.Opponent())))

	b := m.g.Board()
	sb.WriteString("  ")
	for col := 0; col < c4.Cols; col++ {
		if col == m.cursor && !m.thinking && !b.IsTerminal() {
			sb.WriteString(m.glyph(game.Colour(m.human)) + " ")
		} else {
			sb.WriteString("  ")
		}
	}
	sb.WriteString("\n")

	last := b.LastMove()
	for row := c4.Rows - 1; row >= 0; row-- {
		sb.WriteString("⎢ ")
		for col := 0; col < c4.Cols; col++ {
			g := m.glyph(b.At(row, col))
			if last.Single.IsValid() && int(last.Single) == col && b.Height(col)-1 == row {
				g = m.out.String(fmt.Sprintf("%s", b.At(row, col))).Underline().Bold().
					Foreground(m.colour(b.At(row, col))).String()
			}
			sb.WriteString(g + " ")
		}
		sb.WriteString("⎥\n")
	}
	sb.WriteString("  1 2 3 4 5 6 7\n\n")

	switch {
	case b.IsTerminal():
		sb.WriteString(m.result() + "\n")
	case m.thinking:
		sb.WriteString("AI is thinking...\n")
	default:
		sb.WriteString("Your move: ←/→ or 1-7, enter to drop.\n")
	}
	if len(m.thoughts) > 0 {
		var top []string
		for i, s := range mcts.MostVisited(m.thoughts) {
			if i == 3 {
				break
			}
			top = append(top, fmt.Sprintf("%v", s))
		}
		fmt.Fprintf(&sb, "AI thinks (column: win rate (visits)) %s. Took %v.\n", strings.Join(top, ", "), m.elapsed.Round(time.Millisecond))
	}
	if m.err != nil {
		sb.WriteString(m.out.String(m.err.Error()).Foreground(m.out.Color("1")).String() + "\n")
	}
	sb.WriteString("\nPress q to quit.\n")
	return sb.String()
}

func (m model) result() string {
	o := m.g.Board().Outcome()
	switch {
	case o == game.Draw:
		return "It's a draw!"
	case o.Winner() == m.human:
		return fmt.Sprintf("Player %s wins! Well played.", m.glyph(game.Colour(m.human)))
	case o.Ended():
		return fmt.Sprintf("Player %s wins!", m.glyph(game.Colour(m.human.Opponent())))
	}
	return ""
}

func (m model) glyph(c game.Colour) string {
	s := fmt.Sprintf("%s", c)
	if c == game.None {
		return m.out.String(s).Faint().String()
	}
	return m.out.String(s).Bold().Foreground(m.colour(c)).String()
}

func (m model) colour(c game.Colour) termenv.Color {
	switch c {
	case game.Black:
		return m.out.Color("#E88388")
	case game.White:
		return m.out.Color("#DBAB79")
	}
	return termenv.NoColor{}
}

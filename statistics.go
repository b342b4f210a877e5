package connectfour

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Statistics holds the running win/loss/draw tallies of every agent that has played, one entry per game played.
type Statistics struct {
	Creation []string // agent names, in order of first appearance
	Wins     map[string][]float32
	Losses   map[string][]float32
	Draws    map[string][]float32
}

func MakeStatistics() Statistics {
	return Statistics{
		Creation: make([]string, 0, 64),
		Wins:     make(map[string][]float32),
		Losses:   make(map[string][]float32),
		Draws:    make(map[string][]float32),
	}
}

func (s *Statistics) update(A *Agent) {
	aname := A.Name()

	if _, ok := s.Wins[aname]; !ok {
		s.Creation = append(s.Creation, aname)
	}

	s.Wins[aname] = append(s.Wins[aname], A.Wins)
	s.Losses[aname] = append(s.Losses[aname], A.Loss)
	s.Draws[aname] = append(s.Draws[aname], A.Draw)
}

// WinRate returns the latest win rate of the named agent, counting draws as half a win.
// It returns false if the agent has not finished a game.
func (s *Statistics) WinRate(name string) (float32, bool) {
	wins := s.Wins[name]
	if len(wins) == 0 {
		return 0, false
	}
	last := len(wins) - 1
	w, l, d := wins[last], s.Losses[name][last], s.Draws[name][last]
	if w+l+d == 0 {
		return 0, false
	}
	return (w + d/2) / (w + l + d), true
}

// Write writes the win rates as CSV: a header of agent names, then one record per game. Record j holds every
// agent's win rate after its own j-th game; agents that have played fewer games leave the cell empty.
func (s *Statistics) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Creation); err != nil {
		return errors.WithStack(err)
	}
	var rows int
	for _, agent := range s.Creation {
		if n := len(s.Wins[agent]); n > rows {
			rows = n
		}
	}

	var records [][]string
	for j := 0; j < rows; j++ {
		record := make([]string, len(s.Creation))
		for i, agent := range s.Creation {
			if j >= len(s.Wins[agent]) {
				continue
			}
			win := s.Wins[agent][j]
			winRate := win / (win + s.Losses[agent][j] + s.Draws[agent][j])
			record[i] = strconv.FormatFloat(float64(winRate), 'f', 3, 32)
		}
		records = append(records, record)
	}
	if err := cw.WriteAll(records); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Dump writes the statistics to the named file as CSV.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	return s.Write(f)
}

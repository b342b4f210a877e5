package connectfour

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"github.com/gorgonia/connectfour/mcts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Tuner is the top level structure of the package. It pits an incumbent search config against challengers in an
// Arena, and keeps whichever plays better. Challengers differ from the incumbent in their exploration constant.
type Tuner struct {
	// state
	Arena
	Statistics

	// config
	conf Config

	// io
	outEnc OutputEncoder
}

// New creates a tuner from the config.
func New(conf Config) (*Tuner, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("Invalid config %+v", conf)
	}
	a := NewAgent(agentName(conf.A), conf.A)
	b := NewAgent(agentName(conf.B), conf.B)
	if a.Name() == b.Name() {
		b.name += "'"
	}

	return &Tuner{
		Arena:      MakeArena(a, b, conf.Name, conf.Seed),
		Statistics: MakeStatistics(),
		conf:       conf,
		outEnc:     conf.OutputEncoder,
	}, nil
}

// SetLogger sets the logger of the tuner and both agents' searches.
func (t *Tuner) SetLogger(l zerolog.Logger) {
	t.Arena.SetLogger(l)
	t.A.MCTS.SetLogger(l.With().Str("agent", "A").Logger())
	t.B.MCTS.SetLogger(l.With().Str("agent", "B").Logger())
}

// Incumbent returns the config of the best search found so far.
func (t *Tuner) Incumbent() mcts.Config { return t.A.MCTS.Config }

// Tune plays epochs rounds of games. After each round, B replaces A if it won more than the threshold of the
// decisive games, and a new challenger is created from the incumbent.
func (t *Tuner) Tune(epochs, games int) error {
	for t.epoch = 0; t.epoch < epochs; t.epoch++ {
		t.A.resetStats()
		t.B.resetStats()

		if err := t.Run(games, t.outEnc, &t.Statistics); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("Epoch %d", t.epoch))
		}

		var promoted bool
		if decisive := t.B.Wins + t.A.Wins; decisive > 0 && float64(t.B.Wins/decisive) > t.conf.UpdateThreshold {
			t.log.Info().Str("old", t.A.Name()).Str("new", t.B.Name()).Int("epoch", t.epoch).Msg("challenger promoted")
			t.A, t.B = t.B, t.A
			promoted = true
		}
		t.newB(promoted)
	}
	return nil
}

// newB replaces B with a new challenger whose exploration constant is the incumbent's, moved by up to Step.
func (t *Tuner) newB(promoted bool) {
	conf := t.A.MCTS.Config
	delta := (t.r.Float32()*2 - 1) * t.conf.Step
	conf.Exploration = math32.Abs(conf.Exploration + delta)

	logger := t.B.MCTS.Logger()
	t.B = NewAgent(agentName(conf), conf)
	t.B.MCTS.SetLogger(logger)
	for t.B.Name() == t.A.Name() {
		t.B.name += "'"
	}
	t.log.Debug().Bool("promoted", promoted).Str("challenger", t.B.Name()).Msg("new challenger")
}

// Save saves the incumbent's config into the file.
func (t *Tuner) Save(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	enc := gob.NewEncoder(f)
	return errors.WithStack(enc.Encode(t.Incumbent()))
}

// Load loads a config saved by Save and makes it the incumbent. The challenger is created anew.
func (t *Tuner) Load(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	var conf mcts.Config
	dec := gob.NewDecoder(f)
	if err = dec.Decode(&conf); err != nil {
		return errors.WithStack(err)
	}
	if !conf.IsValid() {
		return errors.Errorf("Loaded an invalid config %+v", conf)
	}
	logger := t.A.MCTS.Logger()
	t.A = NewAgent(agentName(conf), conf)
	t.A.MCTS.SetLogger(logger)
	t.newB(false)
	return nil
}

func agentName(conf mcts.Config) string { return fmt.Sprintf("C=%.3f", conf.Exploration) }

package connectfour

import (
	"github.com/gorgonia/connectfour/game"
	"github.com/gorgonia/connectfour/mcts"
)

// recorder is an OutputEncoder that keeps every state it is given.
type recorder struct {
	states  []game.State
	names   []string
	flushed int
}

func (r *recorder) Encode(ms game.MetaState) error {
	r.states = append(r.states, ms.State())
	r.names = append(r.names, ms.Name())
	return nil
}

func (r *recorder) Flush() error { r.flushed++; return nil }

func quickConfig(iterations int, seed int64) mcts.Config {
	conf := mcts.DefaultConfig()
	conf.Iterations = iterations
	conf.Seed = seed
	return conf
}

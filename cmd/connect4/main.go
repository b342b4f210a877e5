package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorgonia/connectfour"
	"github.com/gorgonia/connectfour/game"
	"github.com/gorgonia/connectfour/game/c4"
	"github.com/gorgonia/connectfour/gtp"
	"github.com/gorgonia/connectfour/mcts"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const version = "0.1.0"

var (
	iterations = flag.Int("iterations", 1000, "number of search iterations per AI move")
	explore    = flag.Float64("c", float64(mcts.DefaultExploration), "exploration constant of UCB1")
	seed       = flag.Int64("seed", 0, "seed of the search. 0 seeds from the clock")
	aiFirst    = flag.Bool("ai-first", false, "let the AI make the first move")
	useGTP     = flag.Bool("gtp", false, "speak the text protocol on stdin and stdout instead of showing the board")
	dotFile    = flag.String("dot", "", "write the AI's last search tree to this file in the dot format")
	logFile    = flag.String("log", "", "write logs to this file")
	debug      = flag.Bool("debug", false, "log every search")
)

func main() {
	flag.Parse()
	if err := setupLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	conf := mcts.DefaultConfig()
	conf.Iterations = *iterations
	conf.Exploration = float32(*explore)
	conf.Seed = *seed
	if !conf.IsValid() {
		log.Fatal().Msgf("invalid search config %+v", conf)
	}

	agent := connectfour.NewAgent("AI", conf)
	agent.MCTS.SetLogger(log.Logger.With().Str("agent", agent.Name()).Logger())

	if *useGTP {
		e := gtp.New(nil, "connect4", version, nil)
		e.Generate = agent.Search
		if err := e.Serve(os.Stdin, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("gtp")
		}
		dumpTree(agent)
		return
	}

	human := game.BlackP
	if *aiFirst {
		human = game.WhiteP
	}
	agent.Player = human.Opponent()

	m := newModel(c4.NewGame(), human, agent, termenv.NewOutput(os.Stdout))
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		log.Fatal().Err(err).Msg("ui")
	}
	if fm, ok := final.(model); ok {
		log.Info().Msgf("game over after %d moves: %v", fm.g.MoveNumber(), fm.g.Board().Outcome())
		fmt.Printf("%v", fm.g)
		fmt.Println(fm.result())
	}
	dumpTree(agent)
}

// setupLogging points the global logger at a console writer. The board owns the terminal, so unless -gtp is set,
// logs only go somewhere if -log is given.
func setupLogging() error {
	var w io.Writer = os.Stderr
	switch {
	case *logFile != "":
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		w = f
	case !*useGTP:
		w = io.Discard
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: w != os.Stderr}).
		With().Timestamp().Logger()
	return nil
}

func dumpTree(agent *connectfour.Agent) {
	if *dotFile == "" || agent.MCTS.Root() == nil {
		return
	}
	if err := os.WriteFile(*dotFile, []byte(agent.MCTS.ToDot()), 0644); err != nil {
		log.Error().Err(err).Msgf("unable to write %v", *dotFile)
		return
	}
	log.Info().Msgf("wrote the last search tree to %v", *dotFile)
}

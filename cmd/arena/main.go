package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorgonia/connectfour"
	"github.com/gorgonia/connectfour/encoding/gif"
	"github.com/gorgonia/connectfour/mcts"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	games       = flag.Int("games", 10, "games per epoch")
	epochs      = flag.Int("epochs", 1, "number of epochs. With more than one, the winner of each epoch faces a new challenger")
	iterationsA = flag.Int("iterations-a", 1000, "search iterations of agent A")
	iterationsB = flag.Int("iterations-b", 1000, "search iterations of agent B")
	cA          = flag.Float64("c-a", float64(mcts.DefaultExploration), "exploration constant of agent A")
	cB          = flag.Float64("c-b", 1.0, "exploration constant of agent B")
	threshold   = flag.Float64("threshold", 0.55, "share of decisive games a challenger has to win to take over")
	seed        = flag.Int64("seed", 0, "seed of the arena and both searches. 0 seeds from the clock")
	csvFile     = flag.String("csv", "", "write the win rates to this CSV file")
	gifFile     = flag.String("gif", "", "render every position to this GIF file")
	serve       = flag.String("serve", "", "serve a websocket feed of the moves at this address, e.g. :8080")
	save        = flag.String("save", "", "save the best search config to this file")
	debug       = flag.Bool("debug", false, "log every move and search")
)

func main() {
	flag.Parse()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	conf := connectfour.DefaultConfig()
	conf.Name = "Connect Four Arena"
	conf.A.Iterations, conf.A.Exploration = *iterationsA, float32(*cA)
	conf.B.Iterations, conf.B.Exploration = *iterationsB, float32(*cB)
	conf.UpdateThreshold = *threshold
	conf.Seed = *seed
	if *seed != 0 {
		conf.A.Seed, conf.B.Seed = *seed+1, *seed+2
	}

	var outEnc encoders
	var gifEnc *gif.Encoder
	if *gifFile != "" {
		gifEnc = gif.NewGifEncoder(600, 800)
		outEnc = append(outEnc, gifEnc)
	}
	if *serve != "" {
		wsEnc := NewEncoder()
		outEnc = append(outEnc, wsEnc)
		mux := http.NewServeMux()
		mux.Handle("/ws", wsEnc)
		srv := &http.Server{Addr: *serve, Handler: mux}
		go func() {
			log.Info().Msgf("watch the games at ws://%v/ws", *serve)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("websocket feed")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
	}
	if len(outEnc) > 0 {
		conf.OutputEncoder = outEnc
	}

	t, err := connectfour.New(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	t.SetLogger(log.Logger)

	done := make(chan error, 1)
	go func() { done <- t.Tune(*epochs, *games) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	select {
	case err = <-done:
		if err != nil {
			log.Error().Err(err).Msg("arena")
		}
	case <-sig:
		log.Warn().Msg("interrupted")
		os.Exit(130)
	}

	if gifEnc != nil && gifEnc.Frames() > 0 {
		f, err := os.Create(*gifFile)
		if err != nil {
			log.Fatal().Err(err).Msgf("unable to create %v", *gifFile)
		}
		gifEnc.Writer = f
		if err = gifEnc.Flush(); err != nil {
			log.Error().Err(err).Msg("gif")
		}
		f.Close()
	}
	if *csvFile != "" {
		if err := t.Dump(*csvFile); err != nil {
			log.Error().Err(err).Msgf("unable to write %v", *csvFile)
		}
	}
	if *save != "" {
		if err := t.Save(*save); err != nil {
			log.Error().Err(err).Msgf("unable to save to %v", *save)
		}
	}
	best := t.Incumbent()
	log.Info().Msgf("best exploration constant C=%.3f (%d iterations)", best.Exploration, best.Iterations)
}

package main

import (
	"strings"

	"github.com/gorgonia/connectfour"
	"github.com/gorgonia/connectfour/game"
)

// encoders fans every position out to several encoders.
type encoders []connectfour.OutputEncoder

func (es encoders) Encode(ms game.MetaState) error {
	for _, e := range es {
		if err := e.Encode(ms); err != nil {
			return err
		}
	}
	return nil
}

func (es encoders) Flush() error {
	for _, e := range es {
		if err := e.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func splitLines(s string) []string { return strings.Split(strings.TrimRight(s, "\n"), "\n") }

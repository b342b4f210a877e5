package c4

import (
	"fmt"

	"github.com/gorgonia/connectfour/game"
)

// InvalidMoveError is returned when a column cannot be played.
type InvalidMoveError struct {
	Column game.Single
	Reason string
}

func (err *InvalidMoveError) Error() string {
	return fmt.Sprintf("Unable to play column %d: %s", err.Column, err.Reason)
}

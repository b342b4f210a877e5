package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorgonia/connectfour/game"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// update is what watchers receive after every move.
type update struct {
	Epoch   int      `json:"epoch"`
	Game    int      `json:"game"`
	Player  string   `json:"player"`
	Column  int      `json:"column"` // 1 to 7
	Board   []string `json:"board"`  // top row first
	Outcome string   `json:"outcome"`
}

// Encoder is a structure that encodes a game state according to the connectfour.OutputEncoder interface.
// Every position is broadcast to the websocket clients that are connected at the time; nobody watching is fine.
type Encoder struct {
	sync.Mutex
	clients map[chan []byte]struct{}
}

var upgrader = websocket.Upgrader{} // use default options

func (enc *Encoder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("upgrade")
		return
	}
	defer c.Close()

	ch := make(chan []byte, 64)
	enc.Lock()
	enc.clients[ch] = struct{}{}
	enc.Unlock()
	defer func() {
		enc.Lock()
		delete(enc.clients, ch)
		enc.Unlock()
	}()

	for {
		select {
		case b := <-ch:
			if err = c.WriteMessage(websocket.TextMessage, b); err != nil {
				log.Debug().Err(err).Msg("write")
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}

// NewEncoder creates an encoder with no clients.
func NewEncoder() *Encoder {
	return &Encoder{clients: make(map[chan []byte]struct{})}
}

// Encode a game
func (enc *Encoder) Encode(ms game.MetaState) error {
	g := ms.State()
	last := g.LastMove()
	u := update{
		Epoch:   ms.Epoch(),
		Game:    ms.GameNumber(),
		Player:  fmt.Sprintf("%s", last.Player),
		Column:  int(last.Single) + 1,
		Board:   splitLines(fmt.Sprintf("%s", g)),
		Outcome: fmt.Sprintf("%v", g.Outcome()),
	}
	b, err := json.Marshal(u)
	if err != nil {
		return errors.WithStack(err)
	}

	enc.Lock()
	defer enc.Unlock()
	for ch := range enc.clients {
		select {
		case ch <- b:
		default:
			// slow watchers miss moves
		}
	}
	return nil
}

// Clients returns the number of connected watchers.
func (enc *Encoder) Clients() int {
	enc.Lock()
	defer enc.Unlock()
	return len(enc.clients)
}

// Flush ...
func (enc *Encoder) Flush() error { return nil }

package gif

import (
	"bytes"
	"image/gif"
	"testing"

	"github.com/gorgonia/connectfour/game"
	"github.com/gorgonia/connectfour/game/c4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type meta struct {
	b          c4.Board
	gameNumber int
}

func (m meta) Name() string      { return "Connect Four" }
func (m meta) Epoch() int        { return 0 }
func (m meta) GameNumber() int   { return m.gameNumber }
func (m meta) State() game.State { return m.b }

func TestEncoder(t *testing.T) {
	enc := NewGifEncoder(600, 800)
	require.Error(t, enc.Flush(), "nowhere to write to")

	var buf bytes.Buffer
	enc.Writer = &buf
	require.Error(t, enc.Flush(), "nothing to write")

	b := c4.New()
	var err error
	for _, col := range []game.Single{0, 1, 0, 1, 0, 1, 0} {
		b, err = b.ApplyMove(col)
		require.NoError(t, err)
		require.NoError(t, enc.Encode(meta{b: b, gameNumber: 3}))
	}
	require.True(t, b.IsTerminal())
	assert.Equal(t, 7, enc.Frames())

	require.NoError(t, enc.Flush())
	decoded, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, decoded.Image, 7)
	assert.Equal(t, 300, decoded.Delay[6], "the final position lingers")
	assert.Equal(t, 50, decoded.Delay[0])

	bounds := decoded.Image[0].Bounds()
	assert.True(t, bounds.Dx() > 0 && bounds.Dx() <= 800)
	assert.True(t, bounds.Dy() > 0 && bounds.Dy() <= 600)
	for _, im := range decoded.Image[1:] {
		assert.Equal(t, bounds, im.Bounds(), "every frame has the same size")
	}
}

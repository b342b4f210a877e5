package mcts

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/gorgonia/connectfour/game"
	"github.com/gorgonia/connectfour/game/c4"
	"github.com/pkg/errors"
)

/*
Here lies the search loop, while node.go and tree.go handle the data structure stuff.

Each iteration is the classic four steps:
	SELECT, EXPAND, SIMULATE, BACKPROPAGATE.

There is exactly one rollout per iteration, so after N iterations the root has been visited N times.
*/

// RecommendMove runs a search with the default config and the given iteration budget on a fresh tree.
func RecommendMove(b c4.Board, iterations int) (game.Single, error) {
	conf := DefaultConfig()
	conf.Iterations = iterations
	return New(conf).Search(b)
}

// Search builds a new tree rooted at the board, runs the configured number of iterations and returns the
// column with the best win rate. The tree is kept around for inspection until the next search.
func (t *MCTS) Search(b c4.Board) (game.Single, error) {
	if t.Iterations < 1 {
		return game.NoMove, errors.WithStack(&IllegalSearchError{Reason: fmt.Sprintf("expected at least 1 iteration. Got %d", t.Iterations)})
	}
	if !t.Config.IsValid() {
		return game.NoMove, errors.WithStack(&IllegalSearchError{Reason: fmt.Sprintf("invalid config %+v", t.Config)})
	}
	if b.IsTerminal() {
		return game.NoMove, errors.WithStack(&IllegalSearchError{Reason: fmt.Sprintf("the game is already over: %v", b.Outcome())})
	}

	start := time.Now()
	t.Reset()
	t.root = t.alloc(b, nilNode)
	for i := 0; i < t.Iterations; i++ {
		t.iterate()
	}

	retVal := t.bestMove()
	t.log.Debug().
		Int("move_number", b.MoveNumber()).
		Str("player", fmt.Sprintf("%v", b.ToMove())).
		Int("iterations", t.Iterations).
		Int("nodes", len(t.nodes)).
		Dur("elapsed", time.Since(start)).
		Int32("choice", int32(retVal)).
		Msg("search done")
	return retVal, nil
}

// iterate runs a single iteration from the root.
func (t *MCTS) iterate() {
	// SELECT
	leaf := t.selectLeaf()

	// EXPAND
	chosen := leaf
	if t.expand(leaf) > 0 {
		kids := t.children[leaf]
		chosen = kids[t.rand.Intn(len(kids))]
	}

	// SIMULATE
	outcome := Rollout(t.nodeFromNaughty(chosen).board, t.rand)

	// BACKPROPAGATE
	t.backpropagate(chosen, Utility(outcome))
}

// selectLeaf descends from the root by UCB1 until it reaches a node that is unexpanded or has no children.
func (t *MCTS) selectLeaf() naughty {
	current := t.root
	for {
		n := t.nodeFromNaughty(current)
		if !n.expanded || len(t.children[current]) == 0 {
			return current
		}
		current = t.pickChild(current)
	}
}

// pickChild returns the child with the highest UCB1 score. Of equal scores the last one wins.
func (t *MCTS) pickChild(of naughty) naughty {
	parentVisits := t.nodeFromNaughty(of).visits
	best := nilNode
	bestScore := math32.Inf(-1)
	for _, kid := range t.children[of] {
		score := t.nodeFromNaughty(kid).UCB(parentVisits, t.Exploration)
		if score >= bestScore {
			best, bestScore = kid, score
		}
	}
	return best
}

// Rollout plays uniformly random legal moves on a copy of the board until the game ends, and returns the outcome.
// The caller's board is never modified.
func Rollout(b c4.Board, r *rand.Rand) game.Outcome {
	var buf [c4.Cols]game.Single
	for !b.IsTerminal() {
		moves := b.AppendLegalMoves(buf[:0])
		next, err := b.ApplyMove(moves[r.Intn(len(moves))])
		if err != nil {
			panic(err) // legal moves are always playable
		}
		b = next
	}
	return b.Outcome()
}

// backpropagate adds the reward to every node from the given one up to the root inclusive.
func (t *MCTS) backpropagate(from naughty, reward float32) {
	for current := from; current.isValid(); current = t.nodes[current].parent {
		t.nodes[current].Update(reward)
	}
}

// bestMove returns the move of the root child with the highest win rate. Of equal win rates the first one wins.
func (t *MCTS) bestMove() game.Single {
	retVal := game.NoMove
	bestRate := math32.Inf(-1)
	for _, kid := range t.children[t.root] {
		n := t.nodeFromNaughty(kid)
		if rate := n.WinRate(); retVal == game.NoMove || rate > bestRate {
			retVal, bestRate = n.Move(), rate
		}
	}
	return retVal
}

// RootStats returns the statistics of the root's children after the last search, in column order.
func (t *MCTS) RootStats() []MoveStat {
	if !t.root.isValid() {
		return nil
	}
	kids := t.children[t.root]
	retVal := make([]MoveStat, 0, len(kids))
	for _, kid := range kids {
		n := t.nodeFromNaughty(kid)
		retVal = append(retVal, MoveStat{
			Move:    n.Move(),
			Visits:  n.visits,
			WinRate: n.WinRate(),
		})
	}
	return retVal
}

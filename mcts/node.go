package mcts

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gorgonia/connectfour/game"
	"github.com/gorgonia/connectfour/game/c4"
)

// Node is a node in the search tree. It owns the board it represents; its parent and children are
// handles into the tree that allocated it.
type Node struct {
	board c4.Board

	totalScore float32 // accumulated utility
	visits     uint32  // visits to this node - N(s, a) in the literature
	expanded   bool

	// naughty things
	id     naughty
	parent naughty
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v Move: %v, Score: %v, Visits %v Expanded: %v}", n.id, n.Move(), n.totalScore, n.visits, n.expanded)
}

// Board returns the board of the node.
func (n *Node) Board() c4.Board { return n.board }

// Move gets the move that led to the node's board.
func (n *Node) Move() game.Single { return n.board.LastMove().Single }

// Visits returns the number of rollouts that were backpropagated through the node.
func (n *Node) Visits() uint32 { return n.visits }

// TotalScore returns the accumulated utility of the node.
func (n *Node) TotalScore() float32 { return n.totalScore }

// IsExpanded returns true once the children of the node have been created.
func (n *Node) IsExpanded() bool { return n.expanded }

// IsNotVisited returns true if this node hasn't ever been visited
func (n *Node) IsNotVisited() bool { return n.visits == 0 }

func (n *Node) ID() int { return int(n.id) }

// UCB returns the UCB1 score of the node given its parent's visit count and the exploration constant c.
// Unvisited nodes score +Inf so that every child is tried once before any is exploited.
//
//	UCB1 = Q/N + c * sqrt(ln(parent N) / N)
func (n *Node) UCB(parentVisits uint32, c float32) float32 {
	if n.visits == 0 {
		return math32.Inf(1)
	}
	visits := float32(n.visits)
	return n.totalScore/visits + c*math32.Sqrt(math32.Log(float32(parentVisits))/visits)
}

// WinRate returns the mean utility of the node. Unvisited nodes have no estimate and return -Inf.
func (n *Node) WinRate() float32 {
	if n.visits == 0 {
		return math32.Inf(-1)
	}
	return n.totalScore / float32(n.visits)
}

// Update records the utility of one rollout.
func (n *Node) Update(score float32) {
	n.visits++
	n.totalScore += score
}

package mcts

import (
	"math/rand"
	"time"

	"github.com/gorgonia/connectfour/game"
	"github.com/gorgonia/connectfour/game/c4"
	"github.com/rs/zerolog"
)

// MCTS is essentially a "global" manager of sorts for the memories. The goal is to build MCTS without much pointer chasing.
//
// Nodes live in a single arena and refer to one another with handles. A tree is rebuilt from scratch by every search.
type MCTS struct {
	Config
	rand *rand.Rand

	// memory related fields
	nodes    []Node
	children [][]naughty

	root naughty
	log  zerolog.Logger
}

// New creates a new search with the given config. The tree is empty until a search is run.
func New(conf Config) *MCTS {
	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MCTS{
		Config:   conf,
		rand:     rand.New(rand.NewSource(seed)),
		nodes:    make([]Node, 0, 1024),
		children: make([][]naughty, 0, 1024),
		root:     nilNode,
		log:      zerolog.Nop(),
	}
}

// SetLogger sets the logger the search reports to. By default nothing is logged.
func (t *MCTS) SetLogger(l zerolog.Logger) { t.log = l }

// Logger returns the logger the search reports to.
func (t *MCTS) Logger() zerolog.Logger { return t.log }

// Nodes returns the number of nodes in the tree built by the last search.
func (t *MCTS) Nodes() int { return len(t.nodes) }

// Root returns the root of the tree built by the last search, or nil if no search has been run.
func (t *MCTS) Root() *Node {
	if !t.root.isValid() {
		return nil
	}
	return t.nodeFromNaughty(t.root)
}

// Children returns the children of the node, in column order.
// The returned pointers are only valid until the tree grows again.
func (t *MCTS) Children(of *Node) []*Node {
	kids := t.children[of.id]
	retVal := make([]*Node, 0, len(kids))
	for _, kid := range kids {
		retVal = append(retVal, t.nodeFromNaughty(kid))
	}
	return retVal
}

// Parent returns the parent of the node. The root has no parent and nil is returned.
func (t *MCTS) Parent(of *Node) *Node {
	if !of.parent.isValid() {
		return nil
	}
	return t.nodeFromNaughty(of.parent)
}

// Reset clears the tree. The memory is kept for the next search.
func (t *MCTS) Reset() {
	t.nodes = t.nodes[:0]
	for i := range t.children {
		t.children[i] = t.children[i][:0]
	}
	t.children = t.children[:0]
	t.root = nilNode
}

// alloc allocates a new node into the arena
func (t *MCTS) alloc(b c4.Board, parent naughty) naughty {
	id := naughty(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		board:  b,
		id:     id,
		parent: parent,
	})

	// reuse the children slices left behind by Reset
	if len(t.children) < cap(t.children) {
		t.children = t.children[:len(t.children)+1]
		if t.children[id] == nil {
			t.children[id] = make([]naughty, 0, c4.Cols)
		}
	} else {
		t.children = append(t.children, make([]naughty, 0, c4.Cols))
	}
	return id
}

func (t *MCTS) nodeFromNaughty(ptr naughty) *Node { return &t.nodes[int(ptr)] }

// Expand creates one child per legal move of the node's board, in column order, and returns the number of children.
// Expanding a node twice does nothing; a terminal node is expanded into no children.
//
// Expand grows the arena, so any *Node held by the caller must be considered stale afterwards.
func (t *MCTS) Expand(n *Node) int { return t.expand(n.id) }

func (t *MCTS) expand(of naughty) int {
	n := t.nodeFromNaughty(of)
	if n.expanded {
		return len(t.children[of])
	}
	n.expanded = true
	b := n.board // n is invalidated by alloc

	var buf [c4.Cols]game.Single
	for _, move := range b.AppendLegalMoves(buf[:0]) {
		next, err := b.ApplyMove(move)
		if err != nil {
			panic(err) // legal moves are always playable
		}
		kid := t.alloc(next, of)
		t.children[of] = append(t.children[of], kid)
	}
	return len(t.children[of])
}

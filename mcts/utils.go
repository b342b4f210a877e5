package mcts

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"
	"github.com/gorgonia/connectfour/game"
)

// MoveStat is what the search thinks of a move at the root.
type MoveStat struct {
	Move    game.Single
	Visits  uint32
	WinRate float32 // mean utility; -Inf if the move was never tried
}

func (s MoveStat) Format(f fmt.State, c rune) {
	if math32.IsInf(s.WinRate, -1) {
		fmt.Fprintf(f, "%d: unvisited", s.Move+1)
		return
	}
	fmt.Fprintf(f, "%d: %.3f (%d)", s.Move+1, s.WinRate, s.Visits)
}

// byVisits is a sortable list of move stats. It sorts the most visited first, ties broken by column.
type byVisits []MoveStat

func (l byVisits) Len() int      { return len(l) }
func (l byVisits) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l byVisits) Less(i, j int) bool {
	if l[i].Visits != l[j].Visits {
		return l[i].Visits > l[j].Visits
	}
	return l[i].Move < l[j].Move
}

// MostVisited returns the stats sorted by visits, most visited first. The input is not modified.
func MostVisited(stats []MoveStat) []MoveStat {
	retVal := make([]MoveStat, len(stats))
	copy(retVal, stats)
	sort.Sort(byVisits(retVal))
	return retVal
}

// byMove sorts handles by the column of the move that leads to them.
type byMove struct {
	t *MCTS
	l []naughty
}

func (l byMove) Len() int { return len(l.l) }
func (l byMove) Less(i, j int) bool {
	li := l.t.nodeFromNaughty(l.l[i])
	lj := l.t.nodeFromNaughty(l.l[j])
	return li.Move() < lj.Move()
}
func (l byMove) Swap(i, j int) {
	l.l[i], l.l[j] = l.l[j], l.l[i]
}

package mcts

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/awalterschulze/gographviz"
	"github.com/gorgonia/connectfour/game/c4"
)

type statefulNode struct {
	*Node
	ucb float32
}

func (s *statefulNode) Player() string { return fmt.Sprintf("%s", s.board.LastMove().Player) }

func (s *statefulNode) UCB() string { return fmt.Sprintf("%.3f", s.ucb) }

func (s *statefulNode) WinRate() string { return fmt.Sprintf("%.3f", s.Node.WinRate()) }

func (s *statefulNode) State() string {
	var buf bytes.Buffer
	for i, c := range s.board.Colours() {
		if i%c4.Cols == 0 {
			fmt.Fprint(&buf, "⎢ ")
		}
		fmt.Fprintf(&buf, "%s ", c)
		if (i+1)%c4.Cols == 0 {
			fmt.Fprint(&buf, "⎥<BR />")
		}
	}
	return buf.String()
}

// ToDot returns the tree built by the last search in the Graphviz dot format.
// Each node is drawn as a table with its statistics and board.
func (t *MCTS) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	if err := g.SetDir(true); err != nil {
		panic(err)
	}

	var buf bytes.Buffer
	for i := range t.nodes {
		n := &statefulNode{Node: &t.nodes[i]}
		if n.parent.isValid() {
			n.ucb = n.Node.UCB(t.nodes[n.parent].visits, t.Exploration)
		}

		if err := tmpl.Execute(&buf, n); err != nil {
			panic(err)
		}
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		if err := g.AddNode("G", nodeName(n.id), attrs); err != nil {
			panic(err)
		}
		buf.Reset()
	}

	for i, kids := range t.children {
		if i >= len(t.nodes) {
			break
		}
		sorted := make([]naughty, len(kids))
		copy(sorted, kids)
		sort.Sort(byMove{l: sorted, t: t})
		for _, kid := range sorted {
			if err := g.AddEdge(nodeName(naughty(i)), nodeName(kid), true, nil); err != nil {
				panic(err)
			}
		}
	}
	return g.String()
}

func nodeName(n naughty) string { return fmt.Sprintf("n%d", int(n)) }

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Node ID</TD><TD>{{.ID}}</TD></TR>
<TR><TD>Move</TD><TD>{{.Move}}</TD></TR>
<TR><TD>Player</TD><TD>{{.Player}}</TD></TR>
<TR><TD>Visits</TD><TD>{{.Visits}}</TD></TR>
<TR><TD>Score</TD><TD>{{.TotalScore}}</TD></TR>
<TR><TD>Win Rate</TD><TD>{{.WinRate}}</TD></TR>
<TR><TD>UCB</TD><TD>{{.UCB}}</TD></TR>
<TR><TD>State</TD><TD>{{.State}}</TD></TR>
</TABLE>
>
`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("name").Parse(tmplRaw))
}

package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/coref/markable"
)

var (
	Red       = "\033[1;31m"
	Green     = "\033[1;32m"
	Yellow    = "\033[0;33m"
	Purple    = "\033[1;34m"
	Magenta   = "\033[1;35m"
	Teal      = "\033[1;36m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
)

// clusterColors is the palette cycled over entity clusters.
var clusterColors = []string{Red, Green, Yellow, Purple, Magenta, Teal}

// Resolution is a document together with one resolver's antecedent
// assignment, the unit every renderer consumes.
type Resolution struct {
	Doc         markable.Doc        `json:"-"`
	DocId       int                 `json:"doc_id"`
	Rule        string              `json:"rule,omitempty"`
	Antecedents markable.Assignment `json:"antecedents"`
	Clusters    [][]int             `json:"clusters"`
}

// NewResolution pairs a document with an assignment.
func NewResolution(doc markable.Doc, rule string, ant markable.Assignment) *Resolution {
	return &Resolution{
		Doc:         doc,
		DocId:       doc.Id,
		Rule:        rule,
		Antecedents: ant,
		Clusters:    ant.Clusters(),
	}
}

// Renderer writes resolutions as colored text.
type Renderer struct {
	HasColor bool

	// Singletons includes single-mention clusters in the output.
	Singletons bool

	W io.Writer
}

func NewRenderer() *Renderer {
	return &Renderer{HasColor: true, W: os.Stdout}
}

// Resolution prints the document tokens with every markable bracketed and
// colored by cluster, followed by one line per cluster.
func (r *Renderer) Resolution(res *Resolution) {
	fmt.Fprintf(r.W, "%s\n", r.text(res))

	for c, mentions := range res.Clusters {
		if !r.Singletons && len(mentions) < 2 {
			continue
		}

		var spans []string
		for _, i := range mentions {
			spans = append(spans, strings.Join(res.Doc.Markables[i].Tokens, " "))
		}

		fmt.Fprintf(r.W, "  %s: %s\n", r.color(c, fmt.Sprintf("entity %d", c)), strings.Join(spans, " | "))
	}
}

// Doc prints the raw document tokens with a prefix, markables bracketed but
// uncolored.
func (r *Renderer) Doc(doc markable.Doc, prefix string) {
	res := NewResolution(doc, "", markable.NewAssignment(len(doc.Markables)))

	hasColor := r.HasColor
	r.HasColor = false
	fmt.Fprintf(r.W, "%s%s\n", prefix, r.text(res))
	r.HasColor = hasColor
}

func (r *Renderer) text(res *Resolution) string {
	cluster := make(map[int]int)
	for c, mentions := range res.Clusters {
		for _, i := range mentions {
			cluster[i] = c
		}
	}

	opens := make(map[int][]int)
	closes := make(map[int][]int)
	for i, m := range res.Doc.Markables {
		opens[m.Start] = append(opens[m.Start], i)
		closes[m.End] = append(closes[m.End], i)
	}

	var b strings.Builder
	for t, tok := range res.Doc.Tokens {
		if t > 0 {
			b.WriteString(" ")
		}

		for range opens[t] {
			b.WriteString("[")
		}

		b.WriteString(tok)

		// closing brackets in reverse open order, innermost first
		cs := closes[t]
		for n := len(cs) - 1; n >= 0; n-- {
			i := cs[n]
			b.WriteString("]")
			b.WriteString(r.color(cluster[i], fmt.Sprintf("%d", cluster[i])))
		}
	}

	return b.String()
}

func (r *Renderer) color(cluster int, s string) string {
	if !r.HasColor {
		return s
	}

	c := clusterColors[cluster%len(clusterColors)]
	return c + s + Off
}

package markable

import (
	"fmt"
)

// Markable represents one mention span in a document: a noun phrase, a
// pronoun or any other candidate mention.
//
// Start and End are inclusive offsets into the document token sequence.
// Tokens and Tags carry the spanned words and their POS tags (set by spacy,
// stanza or any other tagger) and must have the same length.
type Markable struct {
	// The index of the first token of the span in the document, starting at 0.
	Start int `json:"start"`

	// The index of the last token of the span. Inclusive.
	End int `json:"end"`

	// The spanned words, unmodified.
	Tokens []string `json:"tokens"`

	// A POS tag per token.
	Tags []string `json:"tags"`

	// Entity is the gold standard cluster id of the mention. It is only
	// consulted by the training oracle and the evaluator, never by a
	// resolver at inference.
	Entity string `json:"entity,omitempty"`
}

// Validate reports whether the markable is internally consistent. A markable
// that fails validation must be rejected at load time, before any resolver
// sees it.
func (m Markable) Validate() error {
	if m.Start < 0 {
		return fmt.Errorf("invalid markable: negative start token %d", m.Start)
	}

	if m.Start > m.End {
		return fmt.Errorf("invalid markable: start token %d after end token %d", m.Start, m.End)
	}

	if len(m.Tokens) != len(m.Tags) {
		return fmt.Errorf("invalid markable: %d tokens but %d tags", len(m.Tokens), len(m.Tags))
	}

	if want := m.End - m.Start + 1; len(m.Tokens) != want {
		return fmt.Errorf("invalid markable: span [%d,%d] covers %d tokens but %d given", m.Start, m.End, want, len(m.Tokens))
	}

	return nil
}

// Doc is a document: the full token sequence plus its markables, sorted by
// document order (Start non-decreasing).
type Doc struct {
	Id int `json:"-"`

	Title string `json:"title,omitempty"`

	Labels []string `json:"labels,omitempty"`

	// The document words in order.
	Tokens []string `json:"doc_tokens"`

	Markables []Markable `json:"markables"`
}

// Library is a collection of Doc
type Library []Doc

// Validate checks every markable of the doc and the document order
// invariant.
func (d Doc) Validate() error {
	prev := -1
	for i, m := range d.Markables {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("doc %d markable %d: %w", d.Id, i, err)
		}

		if m.End >= len(d.Tokens) {
			return fmt.Errorf("doc %d markable %d: end token %d outside document of %d tokens", d.Id, i, m.End, len(d.Tokens))
		}

		if m.Start < prev {
			return fmt.Errorf("doc %d markable %d: not in document order", d.Id, i)
		}
		prev = m.Start
	}

	return nil
}

// Assignment maps each mention index i to its chosen antecedent index a,
// with a <= i. A self reference (a == i) means the mention introduces a new
// entity. This is the output contract of every resolver.
type Assignment []int

// NewAssignment returns the identity assignment for n mentions: every
// mention starts a new entity.
func NewAssignment(n int) Assignment {
	ant := make(Assignment, n)
	for i := range ant {
		ant[i] = i
	}
	return ant
}

// Clusters groups mention indices into entity clusters by following the
// antecedent links. The clusters are ordered by their first mention, the
// mentions inside a cluster by document order.
func (a Assignment) Clusters() [][]int {
	cluster := make([]int, len(a))
	var out [][]int

	for i, ant := range a {
		if ant == i {
			cluster[i] = len(out)
			out = append(out, []int{i})
			continue
		}

		c := cluster[ant]
		cluster[i] = c
		out[c] = append(out[c], i)
	}

	return out
}

// TrueAntecedents is the gold oracle: for every mention it returns the
// nearest preceding markable with the same Entity id, or the mention itself
// if no such markable exists.
func TrueAntecedents(marks []Markable) []int {
	ants := make([]int, len(marks))
	for i := range marks {
		ants[i] = i
		for a := i - 1; a >= 0; a-- {
			if marks[a].Entity == marks[i].Entity {
				ants[i] = a
				break
			}
		}
	}

	return ants
}

// Package resolve turns pairwise compatibility decisions into full-document
// antecedent assignments.
package resolve

import (
	"github.com/revelaction/coref/markable"
	"github.com/revelaction/coref/rules"
)

// Resolver maps a document to an antecedent assignment. The whole Doc is
// passed (not just the markables) because learned resolvers need the token
// sequence for the embeddings; rule resolvers ignore it.
type Resolver interface {
	Resolve(doc markable.Doc) (markable.Assignment, error)
}

// MostRecentMatch scans antecedent candidates for every mention and assigns
// the last compatible one in scan order, i.e. the closest preceding match.
// Mentions without a compatible candidate keep their self reference.
//
// The last match wins deliberately: when a rule accepts several antecedents,
// the nearest one is the safest link.
func MostRecentMatch(marks []markable.Markable, m rules.Matcher) markable.Assignment {
	ant := markable.NewAssignment(len(marks))
	for i := range marks {
		for a := 0; a < i; a++ {
			if m.Match(marks[a], marks[i]) {
				ant[i] = a
			}
		}
	}

	return ant
}

// Rule is a resolver built from one pairwise rule.
type Rule struct {
	Matcher rules.Matcher
}

func NewRule(m rules.Matcher) *Rule {
	return &Rule{Matcher: m}
}

func (r *Rule) Resolve(doc markable.Doc) (markable.Assignment, error) {
	return MostRecentMatch(doc.Markables, r.Matcher), nil
}

// Sieve applies several rules in precedence order. Each pass only considers
// mentions still unresolved after the earlier passes, so a high-precision
// rule placed first is never overruled by a lossier one placed later.
type Sieve struct {
	Passes []rules.Matcher
}

func NewSieve(passes ...rules.Matcher) *Sieve {
	return &Sieve{Passes: passes}
}

func (s *Sieve) Resolve(doc markable.Doc) (markable.Assignment, error) {
	marks := doc.Markables
	ant := markable.NewAssignment(len(marks))

	for _, pass := range s.Passes {
		for i := range marks {
			if ant[i] != i {
				continue
			}

			for a := 0; a < i; a++ {
				if pass.Match(marks[a], marks[i]) {
					ant[i] = a
				}
			}
		}
	}

	return ant, nil
}

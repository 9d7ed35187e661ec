// Package eval measures resolver output against the gold entity labels.
package eval

import (
	"fmt"

	"github.com/revelaction/coref/markable"
	"github.com/revelaction/coref/resolve"
)

// Result holds the link accuracy of a resolver over a library.
type Result struct {
	// Mentions is the number of mentions scored.
	Mentions int

	// Correct counts mentions whose predicted link agrees with gold: a
	// predicted antecedent of the same gold entity, or a predicted new
	// entity where gold starts one.
	Correct int
}

// Accuracy is Correct / Mentions, 1 for an empty dataset.
func (r Result) Accuracy() float64 {
	if r.Mentions == 0 {
		return 1
	}

	return float64(r.Correct) / float64(r.Mentions)
}

// Dataset runs the resolver over every document and scores the links.
func Dataset(r resolve.Resolver, lib markable.Library) (Result, error) {
	var res Result

	for _, doc := range lib {
		ant, err := r.Resolve(doc)
		if err != nil {
			return Result{}, fmt.Errorf("doc %d: %w", doc.Id, err)
		}

		if len(ant) != len(doc.Markables) {
			return Result{}, fmt.Errorf("doc %d: %d assignments for %d markables", doc.Id, len(ant), len(doc.Markables))
		}

		gold := markable.TrueAntecedents(doc.Markables)

		for i, a := range ant {
			res.Mentions++

			if a == i {
				if gold[i] == i {
					res.Correct++
				}
				continue
			}

			if doc.Markables[a].Entity == doc.Markables[i].Entity {
				res.Correct++
			}
		}
	}

	return res, nil
}

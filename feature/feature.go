// Package feature computes sparse pairwise features over a closed,
// model-time vocabulary.
package feature

import (
	"fmt"
)

// Vocabulary is the closed enumeration of feature names known to a scorer.
// Extractors register their names at construction; after Freeze no new name
// is accepted, which pins the scorer's feature block to a fixed shape.
type Vocabulary struct {
	ids    map[string]int
	names  []string
	frozen bool
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{ids: make(map[string]int)}
}

// Add registers a feature name and returns its index. Registering a name
// twice or after Freeze is a configuration error: extractor name spaces are
// disjoint by construction.
func (v *Vocabulary) Add(name string) (int, error) {
	if v.frozen {
		return 0, fmt.Errorf("feature vocabulary frozen, cannot add %q", name)
	}

	if _, ok := v.ids[name]; ok {
		return 0, fmt.Errorf("feature %q registered twice", name)
	}

	id := len(v.names)
	v.ids[name] = id
	v.names = append(v.names, name)
	return id, nil
}

// Freeze closes the vocabulary. Scorers must only be built on frozen
// vocabularies.
func (v *Vocabulary) Freeze() {
	v.frozen = true
}

func (v *Vocabulary) Frozen() bool {
	return v.frozen
}

func (v *Vocabulary) Len() int {
	return len(v.names)
}

// Name returns the feature name at index i.
func (v *Vocabulary) Name(i int) string {
	return v.names[i]
}

// Index returns the index of a registered name.
func (v *Vocabulary) Index(name string) (int, bool) {
	id, ok := v.ids[name]
	return id, ok
}

// Feature is one active feature: a vocabulary index and a positive weight.
// By convention all indicator features carry weight 1.
type Feature struct {
	Index  int
	Weight float64
}

// Set is a sparse feature set. Absent indices have weight 0.
type Set []Feature

// Has reports whether the set contains the given vocabulary index.
func (s Set) Has(index int) bool {
	for _, f := range s {
		if f.Index == index {
			return true
		}
	}

	return false
}

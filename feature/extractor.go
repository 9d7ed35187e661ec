package feature

import (
	"fmt"
	"sort"

	"github.com/revelaction/coref/markable"
	"github.com/revelaction/coref/rules"
)

// Extractor computes the features of an (antecedent a, mention i) candidate
// pair. a == i is the new-entity candidate.
type Extractor interface {
	Extract(marks []markable.Markable, a, i int) Set
}

// Minimal emits the rule-derived indicator features: the new-entity marker
// for self reference, otherwise the exact, last-token and content match
// outcomes plus a crossover marker for overlapping spans.
type Minimal struct {
	newEntity int
	exact     int
	lastToken int
	content   int
	crossover int
}

func NewMinimal(v *Vocabulary) (*Minimal, error) {
	m := &Minimal{}

	for _, reg := range []struct {
		name string
		dst  *int
	}{
		{"new-entity", &m.newEntity},
		{"exact-match", &m.exact},
		{"last-token-match", &m.lastToken},
		{"content-match", &m.content},
		{"crossover", &m.crossover},
	} {
		id, err := v.Add(reg.name)
		if err != nil {
			return nil, err
		}
		*reg.dst = id
	}

	return m, nil
}

func (m *Minimal) Extract(marks []markable.Markable, a, i int) Set {
	if a == i {
		return Set{{Index: m.newEntity, Weight: 1}}
	}

	ma, mi := marks[a], marks[i]

	var s Set
	if (rules.ExactMatch{}).Match(ma, mi) {
		s = append(s, Feature{Index: m.exact, Weight: 1})
	}

	if (rules.MatchLastToken{}).Match(ma, mi) {
		s = append(s, Feature{Index: m.lastToken, Weight: 1})
	}

	if (rules.MatchOnContent{}).Match(ma, mi) {
		s = append(s, Feature{Index: m.content, Weight: 1})
	}

	if rules.Overlap(ma, mi) {
		s = append(s, Feature{Index: m.crossover, Weight: 1})
	}

	return s
}

// Distance emits bucketed distance features: the mention index distance and
// the token distance between the antecedent's end and the mention's start.
// Distances saturate at the configured ceilings instead of being dropped,
// so the feature vocabulary stays finite for arbitrarily long documents.
type Distance struct {
	maxMention int
	maxToken   int

	// index of bucket d is mention[d-1] / token[d-1]
	mention []int
	token   []int
}

const (
	DefaultMaxMentionDistance = 5
	DefaultMaxTokenDistance   = 10
)

func NewDistance(v *Vocabulary, maxMention, maxToken int) (*Distance, error) {
	if maxMention < 1 || maxToken < 1 {
		return nil, fmt.Errorf("distance ceilings must be positive, got %d and %d", maxMention, maxToken)
	}

	d := &Distance{maxMention: maxMention, maxToken: maxToken}

	for dist := 1; dist <= maxMention; dist++ {
		id, err := v.Add(fmt.Sprintf("mention-distance-%d", dist))
		if err != nil {
			return nil, err
		}
		d.mention = append(d.mention, id)
	}

	for dist := 1; dist <= maxToken; dist++ {
		id, err := v.Add(fmt.Sprintf("token-distance-%d", dist))
		if err != nil {
			return nil, err
		}
		d.token = append(d.token, id)
	}

	return d, nil
}

func (d *Distance) Extract(marks []markable.Markable, a, i int) Set {
	if a == i {
		return nil
	}

	var s Set

	mentionDist := min(abs(i-a), d.maxMention)
	if mentionDist > 0 {
		s = append(s, Feature{Index: d.mention[mentionDist-1], Weight: 1})
	}

	tokenDist := min(abs(marks[i].Start-marks[a].End), d.maxToken)
	if tokenDist > 0 {
		s = append(s, Feature{Index: d.token[tokenDist-1], Weight: 1})
	}

	return s
}

// Union evaluates every extractor on the same pair and merges the results.
// On an index collision the later extractor wins; collisions cannot happen
// for extractors built on the same vocabulary, which enforces disjoint name
// spaces.
type Union struct {
	parts []Extractor
}

func NewUnion(parts ...Extractor) *Union {
	return &Union{parts: parts}
}

func (u *Union) Extract(marks []markable.Markable, a, i int) Set {
	merged := make(map[int]float64)
	for _, e := range u.parts {
		for _, f := range e.Extract(marks, a, i) {
			merged[f.Index] = f.Weight
		}
	}

	s := make(Set, 0, len(merged))
	for idx, w := range merged {
		s = append(s, Feature{Index: idx, Weight: w})
	}

	sort.Slice(s, func(x, y int) bool { return s[x].Index < s[y].Index })
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

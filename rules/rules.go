// Package rules contains the pairwise compatibility rules of the sieve
// resolver. Lightly inspired by Stanford's multi-pass sieve
// (http://www.surdeanu.info/mihai/papers/emnlp10.pdf).
package rules

import (
	"strings"

	"github.com/revelaction/coref/markable"
)

// Matcher decides whether the antecedent markable a and the mention markable
// i are compatible. Implementations are stateless and must not mutate the
// markables.
type Matcher interface {
	Match(a, i markable.Markable) bool
}

// pronouns is the closed list used by the pronoun exclusion rules.
var pronouns = []string{
	"i", "me", "mine", "you", "your", "yours", "she", "her", "hers",
	"he", "him", "his", "it", "its", "they", "them", "their", "theirs",
	"this", "those", "these", "that", "we", "our", "us", "ours",
}

// contentTags are the POS tags considered content words by MatchOnContent:
// cardinal numbers, nouns, proper nouns, pronouns and adjectives.
var contentTags = map[string]bool{
	"CD": true, "NN": true, "NNS": true, "NNP": true, "NNPS": true,
	"PRP": true, "PRP$": true, "JJ": true, "JJR": true, "JJS": true,
}

// Overlap reports whether the two spans share any token position. The test
// is symmetric and inclusive of the boundary tokens.
func Overlap(a, b markable.Markable) bool {
	if b.Start <= a.Start && a.Start <= b.End {
		return true
	}

	if a.Start <= b.Start && b.Start <= a.End {
		return true
	}

	return false
}

func equalLower(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}

	return true
}

func isPronoun(m markable.Markable) bool {
	joined := strings.ToLower(strings.Join(m.Tokens, ""))
	for _, p := range pronouns {
		if joined == p {
			return true
		}
	}

	return false
}

// ExactMatch matches markables whose token sequences are identical, case
// insensitive.
type ExactMatch struct{}

func (ExactMatch) Match(a, i markable.Markable) bool {
	return equalLower(a.Tokens, i.Tokens)
}

// ExactMatchNoPronouns is ExactMatch but rejects pronoun mentions, which
// corefer by position rather than by surface form.
type ExactMatchNoPronouns struct{}

func (ExactMatchNoPronouns) Match(a, i markable.Markable) bool {
	return equalLower(a.Tokens, i.Tokens) && !isPronoun(a)
}

// MatchLastToken matches markables whose final tokens are identical, case
// insensitive. Catches "the big dog" / "the dog".
type MatchLastToken struct{}

func (MatchLastToken) Match(a, i markable.Markable) bool {
	if len(a.Tokens) == 0 || len(i.Tokens) == 0 {
		return false
	}

	return strings.EqualFold(a.Tokens[len(a.Tokens)-1], i.Tokens[len(i.Tokens)-1])
}

// MatchNoOverlap matches any pair of non-overlapping spans.
type MatchNoOverlap struct{}

func (MatchNoOverlap) Match(a, i markable.Markable) bool {
	return !Overlap(a, i)
}

// MatchLastTokenNoOverlap matches on the final token for non-overlapping
// spans.
type MatchLastTokenNoOverlap struct{}

func (MatchLastTokenNoOverlap) Match(a, i markable.Markable) bool {
	return MatchLastToken{}.Match(a, i) && !Overlap(a, i)
}

// MatchOnContent filters each span down to its content words (see
// contentTags) and matches if the filtered sequences are identical and the
// spans do not overlap.
type MatchOnContent struct{}

func (MatchOnContent) Match(a, i markable.Markable) bool {
	if Overlap(a, i) {
		return false
	}

	return equalLower(contentWords(a), contentWords(i))
}

func contentWords(m markable.Markable) []string {
	var words []string
	for i, tok := range m.Tokens {
		if contentTags[m.Tags[i]] {
			words = append(words, tok)
		}
	}

	return words
}

// Singleton matches a markable only with itself, producing an all-singleton
// baseline document.
type Singleton struct{}

func (Singleton) Match(a, i markable.Markable) bool {
	return a.Start == i.Start && a.End == i.End
}

// FullCluster matches every pair, producing a single-entity baseline
// document.
type FullCluster struct{}

func (FullCluster) Match(a, i markable.Markable) bool {
	return true
}

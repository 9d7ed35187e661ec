package resolve

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/revelaction/coref/embed"
	"github.com/revelaction/coref/feature"
	"github.com/revelaction/coref/markable"
	"github.com/revelaction/coref/rules"
	"github.com/revelaction/coref/score"
)

// dogDoc is "the dog saw it and the dog barked" with markables for
// "the dog", "it" and "the dog".
func dogDoc() markable.Doc {
	return markable.Doc{
		Tokens: []string{"the", "dog", "saw", "it", "and", "the", "dog", "barked"},
		Markables: []markable.Markable{
			{Start: 0, End: 1, Tokens: []string{"the", "dog"}, Tags: []string{"DT", "NN"}, Entity: "e1"},
			{Start: 3, End: 3, Tokens: []string{"it"}, Tags: []string{"PRP"}, Entity: "e1"},
			{Start: 5, End: 6, Tokens: []string{"the", "dog"}, Tags: []string{"DT", "NN"}, Entity: "e1"},
		},
	}
}

func TestRuleResolverExactMatch(t *testing.T) {
	ant, err := NewRule(rules.ExactMatch{}).Resolve(dogDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := markable.Assignment{0, 1, 0}
	for i := range want {
		if ant[i] != want[i] {
			t.Errorf("mention %d: got %d, want %d", i, ant[i], want[i])
		}
	}
}

func TestAssignmentContract(t *testing.T) {
	doc := dogDoc()

	for _, name := range rules.Names() {
		m, err := rules.ByName(name)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ant, err := NewRule(m).Resolve(doc)
		if err != nil {
			t.Fatalf("rule %s: unexpected error: %v", name, err)
		}

		for i, a := range ant {
			if a > i {
				t.Errorf("rule %s mention %d: antecedent %d after mention", name, i, a)
			}
		}
	}
}

func TestMostRecentMatchWins(t *testing.T) {
	// three identical mentions: the third must link to the second, not
	// the first
	marks := []markable.Markable{
		{Start: 0, End: 0, Tokens: []string{"dog"}, Tags: []string{"NN"}},
		{Start: 2, End: 2, Tokens: []string{"dog"}, Tags: []string{"NN"}},
		{Start: 4, End: 4, Tokens: []string{"dog"}, Tags: []string{"NN"}},
	}

	ant := MostRecentMatch(marks, rules.ExactMatch{})

	if ant[1] != 0 {
		t.Errorf("mention 1: got %d, want 0", ant[1])
	}

	if ant[2] != 1 {
		t.Errorf("mention 2: got %d, want 1 (most recent match)", ant[2])
	}
}

func TestEmptyDocument(t *testing.T) {
	ant, err := NewRule(rules.ExactMatch{}).Resolve(markable.Doc{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ant) != 0 {
		t.Fatalf("expected empty assignment, got %v", ant)
	}
}

func TestBaselineResolvers(t *testing.T) {
	doc := dogDoc()

	ant, err := NewRule(rules.Singleton{}).Resolve(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, a := range ant {
		if a != i {
			t.Errorf("singleton baseline: mention %d linked to %d", i, a)
		}
	}

	ant, err = NewRule(rules.FullCluster{}).Resolve(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(ant); i++ {
		if ant[i] != i-1 {
			t.Errorf("full cluster baseline: mention %d linked to %d, want %d", i, ant[i], i-1)
		}
	}
}

func TestSievePrecedence(t *testing.T) {
	// "the cat saw the dog , the cat saw the dog"
	doc := markable.Doc{
		Tokens: []string{"the", "cat", "saw", "the", "dog", ",", "the", "cat", "saw", "the", "dog"},
		Markables: []markable.Markable{
			{Start: 0, End: 1, Tokens: []string{"the", "cat"}, Tags: []string{"DT", "NN"}},
			{Start: 3, End: 4, Tokens: []string{"the", "dog"}, Tags: []string{"DT", "NN"}},
			{Start: 6, End: 7, Tokens: []string{"the", "cat"}, Tags: []string{"DT", "NN"}},
			{Start: 9, End: 10, Tokens: []string{"the", "dog"}, Tags: []string{"DT", "NN"}},
		},
	}

	// the first pass resolves exact matches; the second pass would link
	// everything to the closest mention but must not override pass one
	s := NewSieve(rules.ExactMatch{}, rules.FullCluster{})

	ant, err := s.Resolve(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ant[2] != 0 {
		t.Errorf("mention 2: got %d, want 0 from the exact pass", ant[2])
	}

	if ant[3] != 1 {
		t.Errorf("mention 3: got %d, want 1 from the exact pass", ant[3])
	}

	// mention 1 has no exact match before it, the second pass links it
	if ant[1] != 0 {
		t.Errorf("mention 1: got %d, want 0 from the cluster pass", ant[1])
	}
}

func TestLearnedResolverArgmax(t *testing.T) {
	doc := dogDoc()

	vocab := feature.NewVocabulary()
	minim, err := feature.NewMinimal(vocab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vocab.Freeze()

	p := embed.NewLexical(16)
	model, err := score.New(vocab, score.Config{MarkDim: 16, Seed: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := NewLearned(p, model, minim)
	ant, err := r.Resolve(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ant) != len(doc.Markables) {
		t.Fatalf("expected %d assignments, got %d", len(doc.Markables), len(ant))
	}

	// the assignment must agree with an explicit argmax over the scores
	embs := p.Document(doc.Tokens)
	spans := make([]*mat.VecDense, len(doc.Markables))
	for i, m := range doc.Markables {
		spans[i] = p.Span(embs, m)
	}

	for i := range doc.Markables {
		scores := model.Instance(spans, doc.Markables, i, minim)

		best := 0
		for a, s := range scores {
			if s > scores[best] {
				best = a
			}
		}

		if ant[i] != best {
			t.Errorf("mention %d: got %d, argmax is %d", i, ant[i], best)
		}
	}
}

func TestLearnedResolverEmptyDoc(t *testing.T) {
	vocab := feature.NewVocabulary()
	minim, err := feature.NewMinimal(vocab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vocab.Freeze()

	p := embed.NewLexical(8)
	model, err := score.New(vocab, score.Config{MarkDim: 8, Seed: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ant, err := NewLearned(p, model, minim).Resolve(markable.Doc{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ant) != 0 {
		t.Fatalf("expected empty assignment, got %v", ant)
	}
}

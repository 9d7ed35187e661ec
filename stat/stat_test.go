package stat

import (
	"testing"

	"github.com/revelaction/coref/markable"
)

func TestAggregate(t *testing.T) {
	doc := markable.Doc{
		Tokens: []string{"the", "dog", "saw", "it"},
		Markables: []markable.Markable{
			{Start: 0, End: 1, Tokens: []string{"the", "dog"}, Tags: []string{"DT", "NN"}, Entity: "e1"},
			{Start: 3, End: 3, Tokens: []string{"it"}, Tags: []string{"PRP"}, Entity: "e1"},
		},
	}

	h := NewHandler()
	h.Aggregate(doc)

	s := h.Get()

	if s.NumDocs != 1 || s.NumTokens != 4 || s.NumMarkables != 2 {
		t.Fatalf("unexpected counts: %+v", s)
	}

	if s.NumEntities != 1 {
		t.Errorf("expected 1 entity, got %d", s.NumEntities)
	}

	if s.SpanLenDis[2] != 1 || s.SpanLenDis[1] != 1 {
		t.Errorf("unexpected span length distribution: %v", s.SpanLenDis)
	}

	if s.ClusterSizeDis[2] != 1 {
		t.Errorf("expected one cluster of size 2, got %v", s.ClusterSizeDis)
	}
}

func TestAggregateMultipleDocs(t *testing.T) {
	h := NewHandler()

	for i := 0; i < 3; i++ {
		h.Aggregate(markable.Doc{
			Tokens: []string{"a", "cat"},
			Markables: []markable.Markable{
				{Start: 0, End: 1, Tokens: []string{"a", "cat"}, Tags: []string{"DT", "NN"}, Entity: "c"},
			},
		})
	}

	s := h.Get()
	if s.NumDocs != 3 || s.MarkablesPerDocMean != 1 {
		t.Fatalf("unexpected stats: %+v", s)
	}
}

func TestMarkablesPerDocMeanFractional(t *testing.T) {
	h := NewHandler()

	h.Aggregate(markable.Doc{
		Tokens: []string{"a", "cat"},
		Markables: []markable.Markable{
			{Start: 0, End: 1, Tokens: []string{"a", "cat"}, Tags: []string{"DT", "NN"}, Entity: "c"},
		},
	})
	h.Aggregate(markable.Doc{
		Tokens: []string{"the", "dog", "and", "it"},
		Markables: []markable.Markable{
			{Start: 0, End: 1, Tokens: []string{"the", "dog"}, Tags: []string{"DT", "NN"}, Entity: "d"},
			{Start: 3, End: 3, Tokens: []string{"it"}, Tags: []string{"PRP"}, Entity: "d"},
		},
	})

	if got := h.Get().MarkablesPerDocMean; got != 1.5 {
		t.Fatalf("expected mean 1.5, got %f", got)
	}
}

package eval

import (
	"testing"

	"github.com/revelaction/coref/markable"
	"github.com/revelaction/coref/resolve"
	"github.com/revelaction/coref/rules"
)

func lib() markable.Library {
	return markable.Library{
		{
			Id:     0,
			Tokens: []string{"the", "dog", "saw", "it", "and", "the", "dog", "barked"},
			Markables: []markable.Markable{
				{Start: 0, End: 1, Tokens: []string{"the", "dog"}, Tags: []string{"DT", "NN"}, Entity: "dog"},
				{Start: 3, End: 3, Tokens: []string{"it"}, Tags: []string{"PRP"}, Entity: "dog"},
				{Start: 5, End: 6, Tokens: []string{"the", "dog"}, Tags: []string{"DT", "NN"}, Entity: "dog"},
			},
		},
	}
}

func TestExactMatchAccuracy(t *testing.T) {
	res, err := Dataset(resolve.NewRule(rules.ExactMatch{}), lib())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Mentions != 3 {
		t.Fatalf("expected 3 mentions, got %d", res.Mentions)
	}

	// mention 0 correctly starts the entity, mention 2 links to 0;
	// mention 1 ("it") wrongly stays a new entity
	if res.Correct != 2 {
		t.Fatalf("expected 2 correct links, got %d", res.Correct)
	}

	if got := res.Accuracy(); got < 0.66 || got > 0.67 {
		t.Fatalf("unexpected accuracy %f", got)
	}
}

func TestSingletonBaseline(t *testing.T) {
	res, err := Dataset(resolve.NewRule(rules.Singleton{}), lib())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// only the first mention of the entity is a correct new-entity call
	if res.Correct != 1 {
		t.Fatalf("expected 1 correct link, got %d", res.Correct)
	}
}

func TestEmptyDataset(t *testing.T) {
	res, err := Dataset(resolve.NewRule(rules.ExactMatch{}), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Accuracy() != 1 {
		t.Fatalf("empty dataset must score 1, got %f", res.Accuracy())
	}
}

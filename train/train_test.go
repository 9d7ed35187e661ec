package train

import (
	"testing"

	"github.com/revelaction/coref/embed"
	"github.com/revelaction/coref/feature"
	"github.com/revelaction/coref/markable"
	"github.com/revelaction/coref/score"
)

func toyLibrary() markable.Library {
	return markable.Library{
		{
			Id:     0,
			Tokens: []string{"the", "dog", "saw", "the", "cat", "and", "the", "dog", "barked"},
			Markables: []markable.Markable{
				{Start: 0, End: 1, Tokens: []string{"the", "dog"}, Tags: []string{"DT", "NN"}, Entity: "dog"},
				{Start: 3, End: 4, Tokens: []string{"the", "cat"}, Tags: []string{"DT", "NN"}, Entity: "cat"},
				{Start: 6, End: 7, Tokens: []string{"the", "dog"}, Tags: []string{"DT", "NN"}, Entity: "dog"},
			},
		},
		{
			Id:     1,
			Tokens: []string{"a", "man", "met", "a", "woman", ";", "the", "man", "smiled"},
			Markables: []markable.Markable{
				{Start: 0, End: 1, Tokens: []string{"a", "man"}, Tags: []string{"DT", "NN"}, Entity: "man"},
				{Start: 3, End: 4, Tokens: []string{"a", "woman"}, Tags: []string{"DT", "NN"}, Entity: "woman"},
				{Start: 6, End: 7, Tokens: []string{"the", "man"}, Tags: []string{"DT", "NN"}, Entity: "man"},
			},
		},
	}
}

func newTrainer(t *testing.T, cfg Config) *Trainer {
	t.Helper()

	vocab := feature.NewVocabulary()
	minim, err := feature.NewMinimal(vocab)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dist, err := feature.NewDistance(vocab, feature.DefaultMaxMentionDistance, feature.DefaultMaxTokenDistance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vocab.Freeze()

	p := embed.NewLexical(16)
	model, err := score.New(vocab, score.Config{MarkDim: 16, FeatDim: 4, HiddenDim: 32, Seed: 11})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return New(p, model, feature.NewUnion(minim, dist), cfg)
}

func TestRunReportsEveryEpoch(t *testing.T) {
	tr := newTrainer(t, Config{Epochs: 3})

	var epochs []int
	err := tr.Run(toyLibrary(), func(r Report) {
		epochs = append(epochs, r.Epoch)

		if len(r.DocLosses) != 2 {
			t.Errorf("epoch %d: expected 2 doc losses, got %d", r.Epoch, len(r.DocLosses))
		}
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(epochs) != 3 {
		t.Fatalf("expected 3 epochs, got %v", epochs)
	}
}

func TestLossNeverNegative(t *testing.T) {
	tr := newTrainer(t, Config{Epochs: 4})

	err := tr.Run(toyLibrary(), func(r Report) {
		if r.AvgLoss < 0 {
			t.Errorf("epoch %d: negative average loss %f", r.Epoch, r.AvgLoss)
		}
		for d, l := range r.DocLosses {
			if l < 0 {
				t.Errorf("epoch %d doc %d: negative loss %f", r.Epoch, d, l)
			}
		}
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWordLimitTruncates(t *testing.T) {
	tr := newTrainer(t, Config{Epochs: 1, WordLimit: 5})

	doc := toyLibrary()[0]
	tokens, marks := tr.truncate(doc)

	if len(tokens) != 5 {
		t.Fatalf("expected 5 tokens, got %d", len(tokens))
	}

	// the third markable ends at token 7 and must be dropped
	if len(marks) != 2 {
		t.Fatalf("expected 2 markables, got %d", len(marks))
	}
}

func TestEmptyDocumentIsNoop(t *testing.T) {
	lib := markable.Library{{Id: 0, Tokens: []string{"nothing", "here"}}}

	tr := newTrainer(t, Config{Epochs: 1})
	err := tr.Run(lib, func(r Report) {
		if r.AvgLoss != 0 {
			t.Errorf("empty doc must produce zero loss, got %f", r.AvgLoss)
		}
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInvalidCorpusFailsFast(t *testing.T) {
	lib := markable.Library{{
		Id:     0,
		Tokens: []string{"the", "dog"},
		Markables: []markable.Markable{
			{Start: 1, End: 0, Tokens: []string{"dog"}, Tags: []string{"NN"}},
		},
	}}

	tr := newTrainer(t, Config{Epochs: 1})
	if err := tr.Run(lib, nil, nil); err == nil {
		t.Fatalf("expected error for invalid markable")
	}
}

func TestDocCallback(t *testing.T) {
	tr := newTrainer(t, Config{Epochs: 2})

	var docs int
	err := tr.Run(toyLibrary(), nil, func() { docs++ })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if docs != 4 {
		t.Fatalf("expected 4 doc callbacks, got %d", docs)
	}
}

// Package train drives the margin-ranking optimization of the pairwise
// scorer over a document library.
package train

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/revelaction/coref/embed"
	"github.com/revelaction/coref/feature"
	"github.com/revelaction/coref/markable"
	"github.com/revelaction/coref/score"
)

// Config holds the optimization settings.
type Config struct {
	Epochs int

	// Margin of the ranking loss: the best gold-coreferent candidate must
	// outscore the best spurious one by at least this much.
	Margin float64

	LearnRate float64

	// WordLimit truncates every document to its first WordLimit tokens.
	// Markables past the limit are skipped. Zero means no limit.
	WordLimit int
}

const (
	DefaultEpochs    = 2
	DefaultMargin    = 1.0
	DefaultLearnRate = 0.01
)

// Report summarizes one finished epoch.
type Report struct {
	Epoch int

	// DocLosses is the average per-mention loss of every document, in
	// library order.
	DocLosses []float64

	// AvgLoss is the total loss over all mention instances of the epoch.
	AvgLoss float64
}

// Trainer owns one training run. The producer is a fixed collaborator; the
// learned parameters are the model's, updated with one gradient step per
// document.
type Trainer struct {
	Producer  embed.Producer
	Model     *score.Model
	Extractor feature.Extractor
	Config    Config
}

func New(p embed.Producer, m *score.Model, ext feature.Extractor, cfg Config) *Trainer {
	if cfg.Epochs <= 0 {
		cfg.Epochs = DefaultEpochs
	}

	if cfg.Margin <= 0 {
		cfg.Margin = DefaultMargin
	}

	if cfg.LearnRate <= 0 {
		cfg.LearnRate = DefaultLearnRate
	}

	return &Trainer{Producer: p, Model: m, Extractor: ext, Config: cfg}
}

// Run trains over the library for the configured number of epochs. onEpoch,
// if not nil, is called after every epoch with the loss report; onDoc, if
// not nil, after every document, for progress display.
func (t *Trainer) Run(lib markable.Library, onEpoch func(Report), onDoc func()) error {
	for _, doc := range lib {
		if err := doc.Validate(); err != nil {
			return fmt.Errorf("training corpus: %w", err)
		}
	}

	g := t.Model.NewGradients()

	for ep := 1; ep <= t.Config.Epochs; ep++ {
		report := Report{Epoch: ep}

		var totLoss float64
		var instances int

		for _, doc := range lib {
			tokens, marks := t.truncate(doc)

			docLoss := t.document(tokens, marks, g)
			t.Model.Step(g, t.Config.LearnRate)

			totLoss += docLoss
			instances += len(marks)

			if len(marks) > 0 {
				report.DocLosses = append(report.DocLosses, docLoss/float64(len(marks)))
			} else {
				report.DocLosses = append(report.DocLosses, 0)
			}

			if onDoc != nil {
				onDoc()
			}
		}

		if instances > 0 {
			report.AvgLoss = totLoss / float64(instances)
		}

		if onEpoch != nil {
			onEpoch(report)
		}
	}

	return nil
}

// document accumulates the hinge losses of one document into g and returns
// the summed loss. Mentions without training signal are skipped.
func (t *Trainer) document(tokens []string, marks []markable.Markable, g *score.Gradients) float64 {
	if len(marks) == 0 {
		return 0
	}

	embs := t.Producer.Document(tokens)
	spans := make([]*mat.VecDense, len(marks))
	for i, m := range marks {
		spans[i] = t.Producer.Span(embs, m)
	}

	trueAnts := markable.TrueAntecedents(marks)

	var loss float64
	for i := range marks {
		l, ok := t.Model.InstanceLoss(spans, marks, i, trueAnts[i], t.Extractor, t.Config.Margin, g)
		if !ok {
			continue
		}
		loss += l
	}

	return loss
}

func (t *Trainer) truncate(doc markable.Doc) ([]string, []markable.Markable) {
	if t.Config.WordLimit <= 0 || len(doc.Tokens) <= t.Config.WordLimit {
		return doc.Tokens, doc.Markables
	}

	tokens := doc.Tokens[:t.Config.WordLimit]

	var marks []markable.Markable
	for _, m := range doc.Markables {
		if m.End < t.Config.WordLimit {
			marks = append(marks, m)
		}
	}

	return tokens, marks
}

package resolve

import (
	"gonum.org/v1/gonum/mat"

	"github.com/revelaction/coref/embed"
	"github.com/revelaction/coref/feature"
	"github.com/revelaction/coref/markable"
	"github.com/revelaction/coref/score"
)

// Learned selects, independently for every mention, the candidate with the
// maximum scorer output among 0..i, the mention itself being the new-entity
// candidate. Embeddings are computed once per document.
type Learned struct {
	Producer  embed.Producer
	Model     *score.Model
	Extractor feature.Extractor
}

func NewLearned(p embed.Producer, m *score.Model, ext feature.Extractor) *Learned {
	return &Learned{Producer: p, Model: m, Extractor: ext}
}

func (l *Learned) Resolve(doc markable.Doc) (markable.Assignment, error) {
	marks := doc.Markables
	ant := markable.NewAssignment(len(marks))
	if len(marks) == 0 {
		return ant, nil
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	embs := l.Producer.Document(doc.Tokens)
	spans := make([]*mat.VecDense, len(marks))
	for i, m := range marks {
		spans[i] = l.Producer.Span(embs, m)
	}

	for i := range marks {
		scores := l.Model.Instance(spans, marks, i, l.Extractor)

		best := 0
		for a, s := range scores {
			if s > scores[best] {
				best = a
			}
		}
		ant[i] = best
	}

	return ant, nil
}

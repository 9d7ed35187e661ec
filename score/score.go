// Package score implements the learned pairwise coreference scorer: a
// feed-forward network over two markable embeddings and a fixed-shape block
// of feature embeddings.
package score

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/revelaction/coref/feature"
	"github.com/revelaction/coref/markable"
)

// Config sizes the scorer network.
type Config struct {
	// MarkDim is the length of the markable embeddings, fixed by the
	// producer.
	MarkDim int

	// FeatDim is the length of each learned feature embedding.
	FeatDim int

	// HiddenDim is the width of the hidden layer.
	HiddenDim int

	// Seed for the parameter initialization.
	Seed int64
}

const (
	DefaultFeatDim   = 4
	DefaultHiddenDim = 64
)

// Model scores the compatibility of a (mention, antecedent) pair. Every
// feature of the vocabulary owns an active and an inactive embedding; the
// input to the network is the concatenation
// [mention emb | antecedent emb | feature block], where the block holds the
// inactive embedding per slot, overwritten by the active one for features
// present in the pair's feature set.
type Model struct {
	vocab *feature.Vocabulary
	cfg   Config

	// featOn/featOff rows are the active/inactive embedding per feature.
	featOn  *mat.Dense
	featOff *mat.Dense

	w1 *mat.Dense
	b1 *mat.VecDense
	w2 *mat.VecDense
	b2 float64
}

// New builds a scorer over a frozen feature vocabulary. An unfrozen
// vocabulary is a configuration error: the feature block shape must be
// final before any parameter exists.
func New(vocab *feature.Vocabulary, cfg Config) (*Model, error) {
	if !vocab.Frozen() {
		return nil, fmt.Errorf("feature vocabulary must be frozen before model construction")
	}

	if vocab.Len() == 0 {
		return nil, fmt.Errorf("empty feature vocabulary")
	}

	if cfg.MarkDim <= 0 {
		return nil, fmt.Errorf("markable embedding dimension must be positive, got %d", cfg.MarkDim)
	}

	if cfg.FeatDim <= 0 {
		cfg.FeatDim = DefaultFeatDim
	}

	if cfg.HiddenDim <= 0 {
		cfg.HiddenDim = DefaultHiddenDim
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	v := vocab.Len()
	in := 2*cfg.MarkDim + v*cfg.FeatDim

	m := &Model{
		vocab:   vocab,
		cfg:     cfg,
		featOn:  randDense(rng, v, cfg.FeatDim),
		featOff: randDense(rng, v, cfg.FeatDim),
		w1:      randDense(rng, cfg.HiddenDim, in),
		b1:      mat.NewVecDense(cfg.HiddenDim, nil),
		w2:      randVec(rng, cfg.HiddenDim),
	}

	return m, nil
}

// Vocabulary returns the frozen feature vocabulary the model was built on.
func (m *Model) Vocabulary() *feature.Vocabulary {
	return m.vocab
}

// pairCache keeps the forward activations of one candidate pair for the
// backward pass.
type pairCache struct {
	x     *mat.VecDense
	h     *mat.VecDense
	r     *mat.VecDense
	feats feature.Set
}

func (m *Model) forward(embI, embA *mat.VecDense, feats feature.Set) (float64, *pairCache) {
	v := m.vocab.Len()
	in := 2*m.cfg.MarkDim + v*m.cfg.FeatDim

	x := mat.NewVecDense(in, nil)
	data := x.RawVector().Data

	copy(data[:m.cfg.MarkDim], embI.RawVector().Data)
	copy(data[m.cfg.MarkDim:2*m.cfg.MarkDim], embA.RawVector().Data)

	block := data[2*m.cfg.MarkDim:]
	for f := 0; f < v; f++ {
		copy(block[f*m.cfg.FeatDim:(f+1)*m.cfg.FeatDim], m.featOff.RawRowView(f))
	}
	for _, f := range feats {
		if f.Weight <= 0 {
			continue
		}
		copy(block[f.Index*m.cfg.FeatDim:(f.Index+1)*m.cfg.FeatDim], m.featOn.RawRowView(f.Index))
	}

	h := mat.NewVecDense(m.cfg.HiddenDim, nil)
	h.MulVec(m.w1, x)
	h.AddVec(h, m.b1)

	r := mat.NewVecDense(m.cfg.HiddenDim, nil)
	for j := 0; j < m.cfg.HiddenDim; j++ {
		r.SetVec(j, math.Max(0, h.AtVec(j)))
	}

	s := mat.Dot(m.w2, r) + m.b2

	return s, &pairCache{x: x, h: h, r: r, feats: feats}
}

// Pair scores one (mention, antecedent) candidate given its feature set.
func (m *Model) Pair(embI, embA *mat.VecDense, feats feature.Set) float64 {
	s, _ := m.forward(embI, embA, feats)
	return s
}

// Instance scores every antecedent candidate of mention i, including the
// mention itself as the new-entity candidate. The returned slice has one
// score per candidate index 0..i.
func (m *Model) Instance(spans []*mat.VecDense, marks []markable.Markable, i int, ext feature.Extractor) []float64 {
	scores := make([]float64, i+1)
	for a := 0; a <= i; a++ {
		scores[a] = m.Pair(spans[i], spans[a], ext.Extract(marks, a, i))
	}

	return scores
}

// TopScores returns the best score among gold-coreferent candidates and the
// best score among the rest: the hardest positive and the hardest negative
// for a max-margin update.
//
// ok is false when the instance carries no training signal: the first
// mention of a document, a gold new-entity mention, or a mention whose
// candidates all share the gold entity. This is an expected high-frequency
// condition, not an error.
func (m *Model) TopScores(spans []*mat.VecDense, marks []markable.Markable, i, trueAnt int, ext feature.Extractor) (bestTrue, bestFalse float64, ok bool) {
	if i == 0 || i == trueAnt {
		return 0, 0, false
	}

	scores := m.Instance(spans, marks, i, ext)

	bestTrue = math.Inf(-1)
	bestFalse = math.Inf(-1)
	haveFalse := false

	for a := 0; a < i; a++ {
		if marks[a].Entity == marks[trueAnt].Entity {
			if scores[a] > bestTrue {
				bestTrue = scores[a]
			}
			continue
		}

		haveFalse = true
		if scores[a] > bestFalse {
			bestFalse = scores[a]
		}
	}

	if !haveFalse {
		return 0, 0, false
	}

	return bestTrue, bestFalse, true
}

func randDense(rng *rand.Rand, rows, cols int) *mat.Dense {
	d := mat.NewDense(rows, cols, nil)
	scale := 1 / math.Sqrt(float64(cols))
	raw := d.RawMatrix().Data
	for i := range raw {
		raw[i] = (2*rng.Float64() - 1) * scale
	}

	return d
}

func randVec(rng *rand.Rand, n int) *mat.VecDense {
	v := mat.NewVecDense(n, nil)
	scale := 1 / math.Sqrt(float64(n))
	raw := v.RawVector().Data
	for i := range raw {
		raw[i] = (2*rng.Float64() - 1) * scale
	}

	return v
}

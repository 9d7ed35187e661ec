package score

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/revelaction/coref/feature"
	"github.com/revelaction/coref/markable"
)

// Gradients accumulates parameter gradients across the mentions of one
// document. One Gradients value belongs to one Model; Step consumes and
// zeroes it.
type Gradients struct {
	featOn  *mat.Dense
	featOff *mat.Dense
	w1      *mat.Dense
	b1      *mat.VecDense
	w2      *mat.VecDense
	b2      float64
}

// NewGradients returns a zeroed gradient accumulator shaped like the model.
func (m *Model) NewGradients() *Gradients {
	v := m.vocab.Len()
	in := 2*m.cfg.MarkDim + v*m.cfg.FeatDim

	return &Gradients{
		featOn:  mat.NewDense(v, m.cfg.FeatDim, nil),
		featOff: mat.NewDense(v, m.cfg.FeatDim, nil),
		w1:      mat.NewDense(m.cfg.HiddenDim, in, nil),
		b1:      mat.NewVecDense(m.cfg.HiddenDim, nil),
		w2:      mat.NewVecDense(m.cfg.HiddenDim, nil),
	}
}

// Reset zeroes the accumulator.
func (g *Gradients) Reset() {
	zero(g.featOn.RawMatrix().Data)
	zero(g.featOff.RawMatrix().Data)
	zero(g.w1.RawMatrix().Data)
	zero(g.b1.RawVector().Data)
	zero(g.w2.RawVector().Data)
	g.b2 = 0
}

func zero(s []float64) {
	for i := range s {
		s[i] = 0
	}
}

// backward adds d * dscore/dparam to the accumulator for one scored pair.
// Gradients flow into the network weights and the feature embeddings; the
// markable embeddings are produced by an external component and receive
// none.
func (m *Model) backward(c *pairCache, d float64, g *Gradients) {
	g.b2 += d
	g.w2.AddScaledVec(g.w2, d, c.r)

	// dh = d * w2 gated by the ReLU
	dh := mat.NewVecDense(m.cfg.HiddenDim, nil)
	for j := 0; j < m.cfg.HiddenDim; j++ {
		if c.h.AtVec(j) > 0 {
			dh.SetVec(j, d*m.w2.AtVec(j))
		}
	}

	g.b1.AddVec(g.b1, dh)

	// dW1 = dh x^T, row by row
	xData := c.x.RawVector().Data
	for j := 0; j < m.cfg.HiddenDim; j++ {
		if dj := dh.AtVec(j); dj != 0 {
			floats.AddScaled(g.w1.RawRowView(j), dj, xData)
		}
	}

	// dx = W1^T dh; only the feature block slots carry parameters
	dx := mat.NewVecDense(c.x.Len(), nil)
	dx.MulVec(m.w1.T(), dh)

	dblock := dx.RawVector().Data[2*m.cfg.MarkDim:]
	for f := 0; f < m.vocab.Len(); f++ {
		slot := dblock[f*m.cfg.FeatDim : (f+1)*m.cfg.FeatDim]
		if c.feats.Has(f) {
			floats.Add(g.featOn.RawRowView(f), slot)
		} else {
			floats.Add(g.featOff.RawRowView(f), slot)
		}
	}
}

// InstanceLoss computes the hinge loss of mention i against its gold
// antecedent and accumulates the gradients of a violated margin into g.
//
// ok follows the TopScores contract: false means the mention carries no
// training signal and contributed nothing. The returned loss is never
// negative.
func (m *Model) InstanceLoss(spans []*mat.VecDense, marks []markable.Markable, i, trueAnt int, ext feature.Extractor, margin float64, g *Gradients) (float64, bool) {
	if i == 0 || i == trueAnt {
		return 0, false
	}

	caches := make([]*pairCache, i)
	scores := make([]float64, i)
	for a := 0; a < i; a++ {
		scores[a], caches[a] = m.forward(spans[i], spans[a], ext.Extract(marks, a, i))
	}

	bestTrue, bestFalse := -1, -1
	for a := 0; a < i; a++ {
		if marks[a].Entity == marks[trueAnt].Entity {
			if bestTrue < 0 || scores[a] > scores[bestTrue] {
				bestTrue = a
			}
			continue
		}

		if bestFalse < 0 || scores[a] > scores[bestFalse] {
			bestFalse = a
		}
	}

	if bestFalse < 0 {
		return 0, false
	}

	loss := margin - scores[bestTrue] + scores[bestFalse]
	if loss <= 0 {
		return 0, true
	}

	m.backward(caches[bestTrue], -1, g)
	m.backward(caches[bestFalse], 1, g)

	return loss, true
}

// Step applies one SGD update with the accumulated gradients and zeroes the
// accumulator.
func (m *Model) Step(g *Gradients, learnRate float64) {
	floats.AddScaled(m.featOn.RawMatrix().Data, -learnRate, g.featOn.RawMatrix().Data)
	floats.AddScaled(m.featOff.RawMatrix().Data, -learnRate, g.featOff.RawMatrix().Data)
	floats.AddScaled(m.w1.RawMatrix().Data, -learnRate, g.w1.RawMatrix().Data)
	m.b1.AddScaledVec(m.b1, -learnRate, g.b1)
	m.w2.AddScaledVec(m.w2, -learnRate, g.w2)
	m.b2 -= learnRate * g.b2

	g.Reset()
}

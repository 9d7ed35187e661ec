// Package embed produces vector embeddings for document tokens and
// markable spans.
package embed

import (
	"hash/fnv"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/revelaction/coref/markable"
)

// Producer computes a contextual embedding per document token and a pooled
// embedding per markable span. The scorer treats producers as opaque; any
// implementation with a fixed output dimension can be plugged in.
type Producer interface {
	// Dim is the length of every vector the producer emits.
	Dim() int

	// Document embeds all tokens of a document, in order.
	Document(tokens []string) []*mat.VecDense

	// Span pools the token embeddings of the markable span into one vector.
	Span(doc []*mat.VecDense, m markable.Markable) *mat.VecDense
}

// Lexical is a deterministic producer: hashed word vectors smoothed with a
// bidirectional exponential context pass, pooled per span with softmax
// attention against a fixed query vector.
//
// The recurrent smoothing state is passed and returned explicitly by each
// step, so a producer value carries no per-document state and needs no
// reset between documents.
type Lexical struct {
	dim   int
	decay float64
	query *mat.VecDense
}

const (
	// DefaultDim is the default embedding width.
	DefaultDim = 32

	// defaultDecay controls how much left/right context bleeds into each
	// token embedding.
	defaultDecay = 0.5
)

func NewLexical(dim int) *Lexical {
	if dim <= 0 {
		dim = DefaultDim
	}

	return &Lexical{
		dim:   dim,
		decay: defaultDecay,
		query: hashedVec("span-attention-query", dim),
	}
}

func (p *Lexical) Dim() int {
	return p.dim
}

// step advances the smoothing state over one token:
// state' = decay*state + (1-decay)*in. The new state doubles as the output
// embedding for the token.
func (p *Lexical) step(state, in *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(p.dim, nil)
	out.AddScaledVec(out, p.decay, state)
	out.AddScaledVec(out, 1-p.decay, in)
	return out
}

func (p *Lexical) Document(tokens []string) []*mat.VecDense {
	base := make([]*mat.VecDense, len(tokens))
	for i, tok := range tokens {
		base[i] = hashedVec(tok, p.dim)
	}

	fwd := make([]*mat.VecDense, len(tokens))
	state := mat.NewVecDense(p.dim, nil)
	for i := range tokens {
		state = p.step(state, base[i])
		fwd[i] = state
	}

	bwd := make([]*mat.VecDense, len(tokens))
	state = mat.NewVecDense(p.dim, nil)
	for i := len(tokens) - 1; i >= 0; i-- {
		state = p.step(state, base[i])
		bwd[i] = state
	}

	out := make([]*mat.VecDense, len(tokens))
	for i := range tokens {
		v := mat.NewVecDense(p.dim, nil)
		v.AddScaledVec(v, 0.5, fwd[i])
		v.AddScaledVec(v, 0.5, bwd[i])
		out[i] = v
	}

	return out
}

func (p *Lexical) Span(doc []*mat.VecDense, m markable.Markable) *mat.VecDense {
	span := doc[m.Start : m.End+1]

	// softmax attention against the fixed query vector
	scores := make([]float64, len(span))
	maxScore := math.Inf(-1)
	for t, e := range span {
		scores[t] = mat.Dot(p.query, e)
		if scores[t] > maxScore {
			maxScore = scores[t]
		}
	}

	var sum float64
	for t := range scores {
		scores[t] = math.Exp(scores[t] - maxScore)
		sum += scores[t]
	}

	out := mat.NewVecDense(p.dim, nil)
	for t, e := range span {
		out.AddScaledVec(out, scores[t]/sum, e)
	}

	return out
}

// hashedVec derives a reproducible pseudo-random unit-scale vector from a
// string. The same word always embeds identically, across runs and
// machines.
func hashedVec(s string, dim int) *mat.VecDense {
	h := fnv.New64a()
	h.Write([]byte(s))

	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	scale := 1 / math.Sqrt(float64(dim))

	data := make([]float64, dim)
	for i := range data {
		data[i] = (2*rng.Float64() - 1) * scale
	}

	return mat.NewVecDense(dim, data)
}

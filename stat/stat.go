package stat

import (
	"github.com/revelaction/coref/markable"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumDocs      int
	NumTokens    int
	NumMarkables int

	// NumEntities counts gold clusters across all aggregated docs.
	NumEntities int

	// MarkablesPerDocMean is the mean markable count per document.
	MarkablesPerDocMean float64

	// SpanLenDis is the distribution of markable span lengths.
	SpanLenDis map[int]int

	// ClusterSizeDis is the distribution of gold cluster sizes.
	ClusterSizeDis map[int]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{SpanLenDis: map[int]int{}, ClusterSizeDis: map[int]int{}}
	return &Handler{
		stats: stats,
	}
}

func (h *Handler) Aggregate(doc markable.Doc) {
	h.stats.NumDocs++
	h.stats.NumTokens += len(doc.Tokens)
	h.stats.NumMarkables += len(doc.Markables)

	entities := map[string]int{}
	for _, m := range doc.Markables {
		h.stats.SpanLenDis[m.End-m.Start+1]++
		entities[m.Entity]++
	}

	h.stats.NumEntities += len(entities)
	for _, size := range entities {
		h.stats.ClusterSizeDis[size]++
	}

	h.stats.MarkablesPerDocMean = float64(h.stats.NumMarkables) / float64(h.stats.NumDocs)
}

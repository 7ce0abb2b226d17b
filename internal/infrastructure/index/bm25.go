package index

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/sportspulse/sportspulse/internal/core/domain"
)

const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// Index is an in-memory BM25-ranked lexical index over a fixed document set.
// Immutable after construction and safe for concurrent searches. The static
// corpus shares one process-lifetime instance; web results get a fresh
// request-scoped instance.
type Index struct {
	docs      []domain.Document
	termFreqs []map[string]int
	docLens   []int
	docFreq   map[string]int
	avgDocLen float64
}

func New(docs []domain.Document) *Index {
	ix := &Index{
		docs:      docs,
		termFreqs: make([]map[string]int, len(docs)),
		docLens:   make([]int, len(docs)),
		docFreq:   make(map[string]int),
	}

	totalLen := 0
	for i, doc := range docs {
		tokens := tokenizeAlphaNumLower(doc.Content)
		tf := make(map[string]int, len(tokens))
		for _, token := range tokens {
			tf[token]++
		}
		ix.termFreqs[i] = tf
		ix.docLens[i] = len(tokens)
		totalLen += len(tokens)
		for term := range tf {
			ix.docFreq[term]++
		}
	}
	if len(docs) > 0 {
		ix.avgDocLen = float64(totalLen) / float64(len(docs))
	}
	return ix
}

func (ix *Index) Size() int { return len(ix.docs) }

// Search returns the topK documents by BM25 score against the query.
// Zero-scoring documents are omitted; ties keep corpus order.
func (ix *Index) Search(ctx context.Context, query string, topK int) ([]domain.RankedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topK <= 0 || len(ix.docs) == 0 {
		return nil, nil
	}

	queryTerms := tokenizeAlphaNumLower(query)
	if len(queryTerms) == 0 {
		return nil, nil
	}

	scored := make([]domain.RankedDocument, 0, len(ix.docs))
	for i := range ix.docs {
		score := ix.scoreDocument(i, queryTerms)
		if score <= 0 {
			continue
		}
		scored = append(scored, domain.RankedDocument{Document: ix.docs[i], Score: score})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func (ix *Index) scoreDocument(docID int, queryTerms []string) float64 {
	tf := ix.termFreqs[docID]
	docLen := float64(ix.docLens[docID])
	n := float64(len(ix.docs))

	score := 0.0
	for _, term := range queryTerms {
		freq := float64(tf[term])
		if freq == 0 {
			continue
		}
		df := float64(ix.docFreq[term])
		idf := math.Log(1 + (n-df+0.5)/(df+0.5))
		norm := 1 - bm25B + bm25B*(docLen/ix.avgDocLen)
		score += idf * (freq * (bm25K1 + 1)) / (freq + bm25K1*norm)
	}
	return score
}

func tokenizeAlphaNumLower(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, 24)
	var b strings.Builder
	for _, r := range s {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}

package usecase

import (
	"sort"

	"github.com/sportspulse/sportspulse/internal/core/domain"
)

const (
	// staticScoreFloor applies before the freshness discount.
	staticScoreFloor = 0.5
	webScoreFloor    = 0.4

	// staticFreshnessDiscount models the lower currency of the pre-built
	// corpus relative to live web results.
	staticFreshnessDiscount = 0.9

	maxMergedAnswers = 5
)

// mergeCandidates filters, scores and ranks both candidate lists into one
// capped result list. Deterministic: the sort is stable over the
// static-then-web insertion order, so knowledge-base entries precede web
// entries on exact score ties.
func mergeCandidates(static, web []domain.Candidate) []domain.ScoredResult {
	merged := make([]domain.ScoredResult, 0, len(static)+len(web))

	for _, c := range static {
		if c.Score < staticScoreFloor {
			continue
		}
		merged = append(merged, toScoredResult(c, domain.SourceKnowledgeBase, c.Score*staticFreshnessDiscount))
	}
	for _, c := range web {
		if c.Score < webScoreFloor {
			continue
		}
		merged = append(merged, toScoredResult(c, domain.SourceWebSearch, c.Score))
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	if len(merged) > maxMergedAnswers {
		merged = merged[:maxMergedAnswers]
	}
	return merged
}

func toScoredResult(c domain.Candidate, source domain.AnswerSource, score float64) domain.ScoredResult {
	meta := map[string]any{}
	if c.Document != nil && c.Document.Meta != nil {
		meta = c.Document.Meta
	}
	return domain.ScoredResult{
		Answer:  c.Answer,
		Score:   score,
		Source:  source,
		Meta:    meta,
		Context: c.ContextSnippet(),
	}
}

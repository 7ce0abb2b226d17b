package usecase

import (
	"strings"
	"testing"

	"github.com/sportspulse/sportspulse/internal/core/domain"
)

func TestMergeDropsLowConfidenceCandidates(t *testing.T) {
	static := []domain.Candidate{
		{Answer: "keep", Score: 0.5},
		{Answer: "drop", Score: 0.49},
	}
	web := []domain.Candidate{
		{Answer: "keep-web", Score: 0.4},
		{Answer: "drop-web", Score: 0.39},
	}

	merged := mergeCandidates(static, web)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged results, got %d", len(merged))
	}
	for _, r := range merged {
		if r.Answer == "drop" || r.Answer == "drop-web" {
			t.Fatalf("below-floor candidate survived merge: %+v", r)
		}
	}
}

func TestMergeAppliesFreshnessDiscountToStaticOnly(t *testing.T) {
	static := []domain.Candidate{{Answer: "a", Score: 0.8}}
	web := []domain.Candidate{{Answer: "b", Score: 0.8}}

	merged := mergeCandidates(static, web)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged results, got %d", len(merged))
	}
	for _, r := range merged {
		switch r.Source {
		case domain.SourceKnowledgeBase:
			if r.Score != 0.8*staticFreshnessDiscount {
				t.Fatalf("expected discounted static score, got %v", r.Score)
			}
		case domain.SourceWebSearch:
			if r.Score != 0.8 {
				t.Fatalf("expected undiscounted web score, got %v", r.Score)
			}
		}
	}
}

func TestMergeRanksFreshWebAboveDiscountedStatic(t *testing.T) {
	static := []domain.Candidate{{Answer: "A", Score: 0.8}}
	web := []domain.Candidate{{Answer: "B", Score: 0.75}}

	merged := mergeCandidates(static, web)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged results, got %d", len(merged))
	}
	if merged[0].Answer != "B" || merged[0].Score != 0.75 {
		t.Fatalf("expected web answer first with score 0.75, got %+v", merged[0])
	}
	if merged[1].Answer != "A" || merged[1].Score != 0.8*staticFreshnessDiscount {
		t.Fatalf("expected static answer second with discounted score, got %+v", merged[1])
	}
}

func TestMergeCapsResultCount(t *testing.T) {
	static := []domain.Candidate{
		{Answer: "s1", Score: 0.9},
		{Answer: "s2", Score: 0.85},
		{Answer: "s3", Score: 0.8},
	}
	web := []domain.Candidate{
		{Answer: "w1", Score: 0.95},
		{Answer: "w2", Score: 0.9},
		{Answer: "w3", Score: 0.85},
	}

	merged := mergeCandidates(static, web)
	if len(merged) != maxMergedAnswers {
		t.Fatalf("expected %d merged results, got %d", maxMergedAnswers, len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].Score > merged[i-1].Score {
			t.Fatalf("merged results not sorted descending at index %d: %v > %v", i, merged[i].Score, merged[i-1].Score)
		}
	}
}

func TestMergeExactScoreTiePrefersStaticInsertionOrder(t *testing.T) {
	// 0.5 * 0.9 lands exactly on a web candidate's 0.45; the stable sort
	// keeps the earlier-inserted knowledge-base entry ahead.
	static := []domain.Candidate{{Answer: "old", Score: 0.5}}
	web := []domain.Candidate{{Answer: "fresh", Score: 0.5 * staticFreshnessDiscount}}

	merged := mergeCandidates(static, web)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged results, got %d", len(merged))
	}
	if merged[0].Source != domain.SourceKnowledgeBase {
		t.Fatalf("expected knowledge_base first on exact tie, got %s", merged[0].Source)
	}
}

func TestMergeEmptyInputsProduceEmptyOutput(t *testing.T) {
	if merged := mergeCandidates(nil, nil); len(merged) != 0 {
		t.Fatalf("expected empty merge, got %d results", len(merged))
	}
}

func TestMergeCopiesDocumentMetaAndContext(t *testing.T) {
	doc := &domain.Document{
		Content: strings.Repeat("x", 300),
		Meta:    map[string]any{"title": "Game recap", "url": "https://example.com/recap"},
	}
	merged := mergeCandidates([]domain.Candidate{{Answer: "a", Score: 0.9, Document: doc}}, nil)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged result, got %d", len(merged))
	}
	if merged[0].Meta["title"] != "Game recap" {
		t.Fatalf("expected document meta copied, got %+v", merged[0].Meta)
	}
	want := strings.Repeat("x", 250) + "..."
	if merged[0].Context != want {
		t.Fatalf("expected truncated context snippet, got %d chars", len(merged[0].Context))
	}
}

func TestMergeWithoutDocumentYieldsEmptyMetaAndContext(t *testing.T) {
	merged := mergeCandidates([]domain.Candidate{{Answer: "a", Score: 0.9}}, nil)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged result, got %d", len(merged))
	}
	if merged[0].Context != "" {
		t.Fatalf("expected empty context, got %q", merged[0].Context)
	}
	if merged[0].Meta == nil || len(merged[0].Meta) != 0 {
		t.Fatalf("expected empty meta map, got %+v", merged[0].Meta)
	}
}

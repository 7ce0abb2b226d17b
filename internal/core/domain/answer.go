package domain

// AnswerSource identifies which pipeline produced a merged answer.
type AnswerSource string

const (
	SourceKnowledgeBase AnswerSource = "knowledge_base"
	SourceWebSearch     AnswerSource = "web_search"
	SourceNone          AnswerSource = "none"
)

const contextSnippetChars = 250

// Candidate is an unranked, unfiltered answer proposal emitted by the
// extractive reader. Score is the raw confidence in [0,1] before any
// freshness adjustment. Document may be nil when the reader could not
// attribute the span.
type Candidate struct {
	Answer   string
	Score    float64
	Document *Document
}

// ContextSnippet returns the opening of the source document content,
// truncated with an ellipsis marker. Empty when there is no source document.
func (c Candidate) ContextSnippet() string {
	if c.Document == nil {
		return ""
	}
	runes := []rune(c.Document.Content)
	if len(runes) <= contextSnippetChars {
		return c.Document.Content
	}
	return string(runes[:contextSnippetChars]) + "..."
}

// ScoredResult is a merged answer after source filtering and the freshness
// discount. Score is no longer bounded by 1 semantics of the raw confidence.
type ScoredResult struct {
	Answer  string         `json:"answer"`
	Score   float64        `json:"score"`
	Source  AnswerSource   `json:"source"`
	Meta    map[string]any `json:"meta"`
	Context string         `json:"context"`
}

// QAResponse is the full answer envelope returned to callers. AllAnswers
// exposes the ranked merged list for explainability display.
type QAResponse struct {
	Answer     string         `json:"answer"`
	Score      float64        `json:"score"`
	Source     AnswerSource   `json:"source"`
	Meta       map[string]any `json:"meta"`
	Context    string         `json:"context"`
	AllAnswers []ScoredResult `json:"all_answers"`
}

// NoAnswerMessage is the fixed fallback answer when neither source produced
// an eligible candidate.
const NoAnswerMessage = "Sorry, I couldn't find any answer related to that topic in my knowledge base or web search."

// NoAnswerResponse returns the sentinel response for the empty-result state.
func NoAnswerResponse() QAResponse {
	return QAResponse{
		Answer:     NoAnswerMessage,
		Score:      0,
		Source:     SourceNone,
		Meta:       map[string]any{},
		Context:    "",
		AllAnswers: []ScoredResult{},
	}
}

// Capabilities reports which answer sources the process can serve. Both
// flags are fixed at construction time and never re-evaluated per request.
type Capabilities struct {
	KnowledgeBase bool `json:"knowledge_base"`
	WebSearch     bool `json:"web_search"`
}

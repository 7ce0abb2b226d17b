package domain

// Document is an immutable unit of indexed text. Meta carries source
// attribution; static corpus documents provide at least title and url, web
// documents additionally carry source, query, search_rank and timestamp.
type Document struct {
	Content string         `json:"content"`
	Meta    map[string]any `json:"meta"`
}

// RankedDocument is a document paired with its lexical relevance score.
type RankedDocument struct {
	Document Document
	Score    float64
}

// SearchResult is a single live web search hit before page fetching.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

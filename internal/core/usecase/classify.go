package usecase

import "strings"

// realTimeTerms are the temporal and sports-freshness markers that make a
// question default to live web search when the caller has not forced a mode.
var realTimeTerms = []string{
	"latest", "recent", "current", "today", "now", "update", "news",
	"score", "game", "match", "season", "trade", "injury", "status",
	"performance", "stats", "record", "standing", "rank", "schedule",
}

// isRealTime reports whether the question asks for live information. Pure
// case-insensitive substring matching; it only supplies the default for
// web-search usage.
func isRealTime(question string) bool {
	q := strings.ToLower(question)
	for _, term := range realTimeTerms {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}

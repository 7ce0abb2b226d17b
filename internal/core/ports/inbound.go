package ports

import (
	"context"

	"github.com/sportspulse/sportspulse/internal/core/domain"
)

// QuestionService is the inbound contract for hybrid question answering.
// Ask always returns a well-formed response for non-blank questions; source
// failures degrade to the sentinel no-answer response, never an error.
type QuestionService interface {
	Ask(ctx context.Context, question string, usage domain.WebUsage) (*domain.QAResponse, error)
	Capabilities() domain.Capabilities
}

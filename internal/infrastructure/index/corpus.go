package index

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sportspulse/sportspulse/internal/core/domain"
)

// LoadCorpus reads the prepared document corpus from path. Records without
// usable content are skipped. A missing or malformed file is an error the
// caller treats as "static source disabled", not a fatal condition.
func LoadCorpus(path string) ([]domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}

	var records []domain.Document
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "parse corpus", err)
	}

	docs := make([]domain.Document, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.Content) == "" {
			continue
		}
		if rec.Meta == nil {
			rec.Meta = map[string]any{}
		}
		docs = append(docs, rec)
	}
	if len(docs) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "load corpus", fmt.Errorf("no usable documents in %s", path))
	}
	return docs, nil
}

package corpus

import (
	"context"

	"github.com/linxiao/corpora/internal/ai"
	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// Analyze runs the AI analysis pipeline over raw text without persisting
// anything. The caller reviews the result and submits it through Ingest.
func (s *Service) Analyze(ctx context.Context, text string) (*ai.AnalysisResult, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	return s.analyzer.AnalyzeText(ctx, text)
}

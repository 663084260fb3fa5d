package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/domain"
	"github.com/linxiao/corpora/pkg/ctxutil"
)

// Ingest atomically creates a corpus entry and, when the payload carries an
// opinion with a non-empty core viewpoint, the linked opinion entry.
//
// The opinion write is non-critical: its failure is logged and swallowed,
// and never rolls back the corpus write. A corpus write failure aborts the
// whole operation before any opinion write is attempted. After commit a
// statistics refresh is scheduled fire-and-forget.
func (s *Service) Ingest(ctx context.Context, input IngestInput) (*domain.CorpusEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	content := input.TextContent()
	if s.maxContentBytes > 0 && len(content) > s.maxContentBytes {
		return nil, domain.NewValidationError("content", "exceeds the maximum allowed size")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" && input.FileInfo != nil {
		title = input.FileInfo.Name
	}
	if title == "" {
		title = DefaultTitle
	}

	entry := &domain.CorpusEntry{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Content:     content,
		Translation: input.Translation,
		Summary:     input.Summary,
		Themes:      domain.NormalizeThemes(input.Themes),
		Tags:        orEmpty(input.Tags),
		Vocabulary:  orEmptyVocab(input.Vocabulary),
		CreatedAt:   time.Now().UTC(),
	}
	entry.Metadata = buildMetadata(input.FileInfo, content)

	// The corpus write commits on its own first: a failed opinion statement
	// would abort a shared transaction and take the corpus row with it.
	var created *domain.CorpusEntry
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.corpus.Create(txCtx, entry)
		if err != nil {
			return fmt.Errorf("create corpus entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.Opinion != nil && strings.TrimSpace(input.Opinion.CoreViewpoint) != "" {
		op := &domain.OpinionEntry{
			ID:                 uuid.New(),
			UserID:             userID,
			SourceID:           created.ID,
			Content:            input.Opinion.CoreViewpoint,
			Theme:              created.Themes.Primary,
			SubThemes:          orEmpty(created.Themes.Secondary),
			Tags:               orEmpty(created.Tags),
			SupportingFacts:    orEmpty(input.Opinion.SupportingEvidence),
			CriticalQuestion:   input.Opinion.CriticalQuestion,
			Counterargument:    input.Opinion.Counterargument,
			PersonalReflection: input.PersonalReflection,
			CreatedAt:          created.CreatedAt,
		}

		// Non-critical: an opinion failure never surfaces to the caller.
		if _, err := s.opinions.Create(ctx, op); err != nil {
			s.log.ErrorContext(ctx, "opinion save failed",
				slog.String("user_id", userID.String()),
				slog.String("corpus_id", created.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	s.stats.Schedule(userID)

	s.log.InfoContext(ctx, "corpus entry created",
		slog.String("user_id", userID.String()),
		slog.String("corpus_id", created.ID.String()),
		slog.String("title", created.Title),
		slog.Int("vocabulary_items", len(created.Vocabulary)),
	)

	return created, nil
}

// buildMetadata derives file metadata, computing the word count from content.
func buildMetadata(fi *FileInfo, content string) domain.FileMetadata {
	meta := domain.FileMetadata{
		Filename:  "unknown",
		FileType:  "text",
		WordCount: domain.WordCount(content),
	}
	if fi != nil {
		if fi.Name != "" {
			meta.Filename = fi.Name
		}
		if fi.Type != "" {
			meta.FileType = fi.Type
		}
		meta.FileSize = fi.Size
	}
	return meta
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyVocab(v []domain.VocabularyItem) []domain.VocabularyItem {
	if v == nil {
		return []domain.VocabularyItem{}
	}
	return v
}

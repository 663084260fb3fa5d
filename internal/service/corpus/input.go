package corpus

import (
	"strings"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/ai"
	"github.com/linxiao/corpora/internal/domain"
)

// FileInfo describes the uploaded file a submission originated from.
type FileInfo struct {
	Name string
	Type string
	Size int64
}

// IngestInput is the corpus-create payload: either the output of the
// analysis pipeline or a raw user submission. Content falls back to RawText
// when absent.
type IngestInput struct {
	Title       string
	Content     string
	RawText     string
	Translation string
	Summary     string
	Themes      any // structured object or legacy [primary, ...secondary] array
	Tags        []string
	Vocabulary  []domain.VocabularyItem
	Opinion     *ai.OpinionAnalysis
	FileInfo    *FileInfo

	PersonalReflection string
}

// TextContent returns Content or its raw-text fallback, trimmed.
func (i IngestInput) TextContent() string {
	if strings.TrimSpace(i.Content) != "" {
		return i.Content
	}
	return i.RawText
}

// Validate checks that the submission carries non-empty text content.
func (i IngestInput) Validate() error {
	if strings.TrimSpace(i.TextContent()) == "" {
		return domain.NewValidationError("content", "must not be empty")
	}
	return nil
}

// ListInput holds the parameters for listing corpus entries.
// Page and Limit are clamped, not rejected. A nil Limit means the client
// did not send one and gets the default page size; an explicit value is
// clamped into range, so limit=0 becomes 1, not the default.
type ListInput struct {
	Page   int
	Limit  *int
	Theme  string
	Search string
}

// UpdateInput holds a field-level partial update. Nil means "leave
// unchanged"; a present field is assigned even when empty.
type UpdateInput struct {
	EntryID     uuid.UUID
	Title       *string
	Content     *string
	Translation *string
	Summary     *string
	Themes      any // nil when absent; structured or legacy array otherwise
	Tags        *[]string
	Vocabulary  *[]domain.VocabularyItem
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.EntryID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Title != nil && strings.TrimSpace(*i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "must not be empty"})
	}
	if i.Content != nil && strings.TrimSpace(*i.Content) == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

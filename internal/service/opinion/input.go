package opinion

import (
	"strings"

	"github.com/google/uuid"

	"github.com/linxiao/corpora/internal/domain"
)

// ListInput holds the parameters for listing opinion entries.
// Page and Limit are clamped, not rejected. A nil Limit means the client
// did not send one and gets the default page size; an explicit value is
// clamped into range, so limit=0 becomes 1, not the default.
type ListInput struct {
	Page  int
	Limit *int
	Theme string
}

// UpdateInput holds a field-level partial update. Nil means "leave
// unchanged"; a present field is assigned even when empty.
type UpdateInput struct {
	OpinionID          uuid.UUID
	Content            *string
	Theme              *string
	SubThemes          *[]string
	Tags               *[]string
	SupportingFacts    *[]string
	CriticalQuestion   *string
	Counterargument    *string
	PersonalReflection *string
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.OpinionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Content != nil && strings.TrimSpace(*i.Content) == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "must not be empty"})
	}
	if i.Theme != nil && strings.TrimSpace(*i.Theme) == "" {
		errs = append(errs, domain.FieldError{Field: "theme", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

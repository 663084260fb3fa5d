package domain

import (
	"time"

	"github.com/google/uuid"
)

// OpinionEntry is a distilled argumentative viewpoint derived from a corpus
// entry. It references its source and is removed when the source is deleted.
type OpinionEntry struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	SourceID           uuid.UUID
	Content            string
	Theme              string
	SubThemes          []string
	Tags               []string
	SupportingFacts    []string
	CriticalQuestion   string
	Counterargument    string
	PersonalReflection string
	Archived           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// OpinionUpdateParams carries a partial update. Nil means "leave unchanged".
type OpinionUpdateParams struct {
	Content            *string
	Theme              *string
	SubThemes          *[]string
	Tags               *[]string
	SupportingFacts    *[]string
	CriticalQuestion   *string
	Counterargument    *string
	PersonalReflection *string
}

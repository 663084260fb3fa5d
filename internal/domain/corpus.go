package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTheme is assigned wherever a theme is missing or unrecognized.
const DefaultTheme = "General"

// Themes is the topical classification of a corpus entry: one primary theme
// plus ordered secondary and custom lists.
type Themes struct {
	Primary   string   `json:"primary"`
	Secondary []string `json:"secondary"`
	Custom    []string `json:"custom"`
}

// VocabularyItem is one word or phrase extracted from a corpus entry.
// Items are embedded in the entry and have no identity of their own.
type VocabularyItem struct {
	Word             string     `json:"word"`
	Meaning          string     `json:"meaning"`
	OriginalSentence string     `json:"originalSentence"`
	Collocation      string     `json:"collocation"`
	Reason           string     `json:"reason"`
	UsageScenario    string     `json:"usageScenario"`
	Mastered         bool       `json:"mastered"`
	ReviewCount      int        `json:"reviewCount"`
	LastReviewed     *time.Time `json:"lastReviewed,omitempty"`
}

// FileMetadata describes the upload a corpus entry originated from,
// plus the derived word count of its content.
type FileMetadata struct {
	Filename  string `json:"filename"`
	FileType  string `json:"fileType"`
	FileSize  int64  `json:"fileSize"`
	WordCount int    `json:"wordCount"`
}

// CorpusEntry is a stored piece of source text with its derived learning
// artifacts: translation, summary, themes, tags, and vocabulary.
type CorpusEntry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Content     string
	Translation string
	Summary     string
	Themes      Themes
	Tags        []string
	Vocabulary  []VocabularyItem
	Metadata    FileMetadata
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CorpusUpdateParams carries a partial update. A nil field means "leave
// unchanged"; a present field is assigned as-is, including empty values.
type CorpusUpdateParams struct {
	Title       *string
	Content     *string
	Translation *string
	Summary     *string
	Themes      *Themes
	Tags        *[]string
	Vocabulary  *[]VocabularyItem
}

// WordCount counts non-empty whitespace-separated tokens in content.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// NormalizeThemes coerces the two accepted wire shapes of the themes field
// into the canonical structure. A legacy bare array [primary, ...secondary]
// and the structured object both normalize to the same Themes value; any
// other shape yields the default.
func NormalizeThemes(raw any) Themes {
	switch v := raw.(type) {
	case []any:
		t := Themes{Primary: DefaultTheme, Secondary: []string{}, Custom: []string{}}
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if i == 0 {
				if s != "" {
					t.Primary = s
				}
				continue
			}
			t.Secondary = append(t.Secondary, s)
		}
		return t
	case map[string]any:
		t := Themes{
			Primary:   stringOr(v["primary"], DefaultTheme),
			Secondary: stringSlice(v["secondary"]),
			Custom:    stringSlice(v["custom"]),
		}
		return t
	case Themes:
		return SanitizeThemes(v)
	default:
		return Themes{Primary: DefaultTheme, Secondary: []string{}, Custom: []string{}}
	}
}

// SanitizeThemes fills defaults on an already-structured Themes value.
func SanitizeThemes(t Themes) Themes {
	if strings.TrimSpace(t.Primary) == "" {
		t.Primary = DefaultTheme
	}
	if t.Secondary == nil {
		t.Secondary = []string{}
	}
	if t.Custom == nil {
		t.Custom = []string{}
	}
	return t
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

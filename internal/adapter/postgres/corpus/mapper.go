package corpus

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/linxiao/corpora/internal/domain"
)

// scanEntry reads one corpus_entries row in entryColumns order.
func scanEntry(row pgx.Row) (*domain.CorpusEntry, error) {
	var (
		entry domain.CorpusEntry
		vocab []byte
	)

	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.Title, &entry.Content,
		&entry.Translation, &entry.Summary,
		&entry.Themes.Primary, &entry.Themes.Secondary, &entry.Themes.Custom,
		&entry.Tags, &vocab,
		&entry.Metadata.Filename, &entry.Metadata.FileType,
		&entry.Metadata.FileSize, &entry.Metadata.WordCount,
		&entry.Archived, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(vocab, &entry.Vocabulary); err != nil {
		return nil, fmt.Errorf("unmarshal vocabulary: %w", err)
	}
	if entry.Vocabulary == nil {
		entry.Vocabulary = []domain.VocabularyItem{}
	}

	return &entry, nil
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

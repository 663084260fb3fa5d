// Package corpus implements the corpus entry repository using PostgreSQL.
package corpus

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/linxiao/corpora/internal/adapter/postgres"
	"github.com/linxiao/corpora/internal/domain"
)

// psql builds queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var entryColumns = []string{
	"id", "user_id", "title", "content", "translation", "summary",
	"theme_primary", "themes_secondary", "themes_custom", "tags",
	"vocabulary", "filename", "file_type", "file_size", "word_count",
	"archived", "created_at", "updated_at",
}

// Repo provides corpus entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new corpus repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a corpus entry by primary key.
// Returns domain.ErrNotFound if the entry does not exist, is archived,
// or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.CorpusEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(entryColumns...).
		From("corpus_entries").
		Where(sq.Eq{"id": entryID, "user_id": userID, "archived": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	entry, err := scanEntry(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "corpus_entry", entryID)
	}

	return entry, nil
}

// Find returns entries matching the filter ordered by created_at DESC,
// plus the total count of matching rows before pagination.
// Returns an empty slice and totalCount 0 when nothing matches.
func (r *Repo) Find(ctx context.Context, userID uuid.UUID, filter domain.CorpusFilter) ([]*domain.CorpusEntry, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	where := sq.And{sq.Eq{"user_id": userID, "archived": false}}
	if filter.Theme != "" {
		where = append(where, sq.Eq{"theme_primary": filter.Theme})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"content": pattern},
		})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").
		From("corpus_entries").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var totalCount int
	if err := querier.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count corpus_entries: %w", err)
	}

	query, args, err := psql.Select(entryColumns...).
		From("corpus_entries").
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list corpus_entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.CorpusEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan corpus_entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate corpus_entries: %w", err)
	}

	return entries, totalCount, nil
}

// AggregateByTheme returns per-theme entry and vocabulary counts for a user,
// ordered by entry count descending.
func (r *Repo) AggregateByTheme(ctx context.Context, userID uuid.UUID) ([]domain.ThemeAggregate, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(
		"theme_primary",
		"COUNT(*) AS entry_count",
		"COALESCE(SUM(jsonb_array_length(vocabulary)), 0) AS vocabulary_count",
	).
		From("corpus_entries").
		Where(sq.Eq{"user_id": userID, "archived": false}).
		GroupBy("theme_primary").
		OrderBy("entry_count DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate corpus_entries: %w", err)
	}
	defer rows.Close()

	aggs := make([]domain.ThemeAggregate, 0)
	for rows.Next() {
		var a domain.ThemeAggregate
		if err := rows.Scan(&a.Theme, &a.EntryCount, &a.VocabularyCount); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate aggregates: %w", err)
	}

	return aggs, nil
}

// CountByUser returns the number of active corpus entries for a user.
func (r *Repo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select("COUNT(*)").
		From("corpus_entries").
		Where(sq.Eq{"user_id": userID, "archived": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int
	if err := querier.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count corpus_entries: %w", err)
	}

	return count, nil
}

// SumVocabularyByUser returns the total number of vocabulary items across
// all active entries of a user.
func (r *Repo) SumVocabularyByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select("COALESCE(SUM(jsonb_array_length(vocabulary)), 0)").
		From("corpus_entries").
		Where(sq.Eq{"user_id": userID, "archived": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var sum int
	if err := querier.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum vocabulary: %w", err)
	}

	return sum, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new corpus entry and returns the persisted row.
func (r *Repo) Create(ctx context.Context, entry *domain.CorpusEntry) (*domain.CorpusEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	vocab, err := json.Marshal(entry.Vocabulary)
	if err != nil {
		return nil, fmt.Errorf("marshal vocabulary: %w", err)
	}

	query, args, err := psql.Insert("corpus_entries").
		Columns(
			"id", "user_id", "title", "content", "translation", "summary",
			"theme_primary", "themes_secondary", "themes_custom", "tags",
			"vocabulary", "filename", "file_type", "file_size", "word_count",
		).
		Values(
			entry.ID, entry.UserID, entry.Title, entry.Content,
			entry.Translation, entry.Summary,
			entry.Themes.Primary, entry.Themes.Secondary, entry.Themes.Custom,
			entry.Tags, vocab,
			entry.Metadata.Filename, entry.Metadata.FileType,
			entry.Metadata.FileSize, entry.Metadata.WordCount,
		).
		Suffix("RETURNING " + joinColumns(entryColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	created, err := scanEntry(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "corpus_entry", entry.ID)
	}

	return created, nil
}

// Update applies a partial update and returns the updated row.
// Returns domain.ErrNotFound if the entry does not exist or belongs to
// another user.
func (r *Repo) Update(ctx context.Context, userID, entryID uuid.UUID, params domain.CorpusUpdateParams) (*domain.CorpusEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	update := psql.Update("corpus_entries").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": entryID, "user_id": userID, "archived": false})

	if params.Title != nil {
		update = update.Set("title", *params.Title)
	}
	if params.Content != nil {
		update = update.Set("content", *params.Content)
		update = update.Set("word_count", domain.WordCount(*params.Content))
	}
	if params.Translation != nil {
		update = update.Set("translation", *params.Translation)
	}
	if params.Summary != nil {
		update = update.Set("summary", *params.Summary)
	}
	if params.Themes != nil {
		t := domain.SanitizeThemes(*params.Themes)
		update = update.Set("theme_primary", t.Primary).
			Set("themes_secondary", t.Secondary).
			Set("themes_custom", t.Custom)
	}
	if params.Tags != nil {
		update = update.Set("tags", *params.Tags)
	}
	if params.Vocabulary != nil {
		vocab, err := json.Marshal(*params.Vocabulary)
		if err != nil {
			return nil, fmt.Errorf("marshal vocabulary: %w", err)
		}
		update = update.Set("vocabulary", vocab)
	}

	query, args, err := update.
		Suffix("RETURNING " + joinColumns(entryColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	entry, err := scanEntry(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "corpus_entry", entryID)
	}

	return entry, nil
}

// Delete removes a corpus entry permanently. Returns domain.ErrNotFound
// if the entry does not exist or belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Delete("corpus_entries").
		Where(sq.Eq{"id": entryID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "corpus_entry", entryID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("corpus_entry %s: %w", entryID, domain.ErrNotFound)
	}

	return nil
}

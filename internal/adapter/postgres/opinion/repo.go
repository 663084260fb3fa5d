// Package opinion implements the opinion entry repository using PostgreSQL.
package opinion

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/linxiao/corpora/internal/adapter/postgres"
	"github.com/linxiao/corpora/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var opinionColumns = []string{
	"id", "user_id", "source_id", "content", "theme", "sub_themes", "tags",
	"supporting_facts", "critical_question", "counterargument",
	"personal_reflection", "archived", "created_at", "updated_at",
}

// Repo provides opinion entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new opinion repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns an opinion entry by primary key.
// Returns domain.ErrNotFound if the entry does not exist, is archived,
// or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, opinionID uuid.UUID) (*domain.OpinionEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(opinionColumns...).
		From("opinion_entries").
		Where(sq.Eq{"id": opinionID, "user_id": userID, "archived": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	op, err := scanOpinion(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "opinion_entry", opinionID)
	}

	return op, nil
}

// Find returns opinions matching the filter ordered by created_at DESC,
// plus the total count of matching rows before pagination.
func (r *Repo) Find(ctx context.Context, userID uuid.UUID, filter domain.OpinionFilter) ([]*domain.OpinionEntry, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	where := sq.And{sq.Eq{"user_id": userID, "archived": false}}
	if filter.Theme != "" {
		where = append(where, sq.Eq{"theme": filter.Theme})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").
		From("opinion_entries").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var totalCount int
	if err := querier.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("count opinion_entries: %w", err)
	}

	query, args, err := psql.Select(opinionColumns...).
		From("opinion_entries").
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
		return nil, 0, fmt.Errorf("list opinion_entries: %w", err)
	}
	defer rows.Close()

	opinions := make([]*domain.OpinionEntry, 0)
	for rows.Next() {
		op, err := scanOpinion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan opinion_entry: %w", err)
		}
		opinions = append(opinions, op)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate opinion_entries: %w", err)
	}

	return opinions, totalCount, nil
}

// AggregateByTheme returns per-theme opinion counts for a user,
// ordered by count descending.
func (r *Repo) AggregateByTheme(ctx context.Context, userID uuid.UUID) ([]domain.ThemeAggregate, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select("theme", "COUNT(*) AS entry_count").
		From("opinion_entries").
		Where(sq.Eq{"user_id": userID, "archived": false}).
		GroupBy("theme").
		OrderBy("entry_count DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate opinion_entries: %w", err)
	}
	defer rows.Close()

	aggs := make([]domain.ThemeAggregate, 0)
	for rows.Next() {
		var a domain.ThemeAggregate
		if err := rows.Scan(&a.Theme, &a.EntryCount); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate aggregates: %w", err)
	}

	return aggs, nil
}

// CountByUser returns the number of active opinion entries for a user.
func (r *Repo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select("COUNT(*)").
		From("opinion_entries").
		Where(sq.Eq{"user_id": userID, "archived": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int
	if err := querier.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count opinion_entries: %w", err)
	}

	return count, nil
}

// Create inserts a new opinion entry and returns the persisted row.
func (r *Repo) Create(ctx context.Context, op *domain.OpinionEntry) (*domain.OpinionEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Insert("opinion_entries").
		Columns(
			"id", "user_id", "source_id", "content", "theme", "sub_themes",
			"tags", "supporting_facts", "critical_question",
			"counterargument", "personal_reflection",
		).
		Values(
			op.ID, op.UserID, op.SourceID, op.Content, op.Theme,
			op.SubThemes, op.Tags, op.SupportingFacts,
			op.CriticalQuestion, op.Counterargument, op.PersonalReflection,
		).
		Suffix("RETURNING " + strings.Join(opinionColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	created, err := scanOpinion(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "opinion_entry", op.ID)
	}

	return created, nil
}

// Update applies a partial update and returns the updated row.
func (r *Repo) Update(ctx context.Context, userID, opinionID uuid.UUID, params domain.OpinionUpdateParams) (*domain.OpinionEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	update := psql.Update("opinion_entries").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": opinionID, "user_id": userID, "archived": false})

	if params.Content != nil {
		update = update.Set("content", *params.Content)
	}
	if params.Theme != nil {
		update = update.Set("theme", *params.Theme)
	}
	if params.SubThemes != nil {
		update = update.Set("sub_themes", *params.SubThemes)
	}
	if params.Tags != nil {
		update = update.Set("tags", *params.Tags)
	}
	if params.SupportingFacts != nil {
		update = update.Set("supporting_facts", *params.SupportingFacts)
	}
	if params.CriticalQuestion != nil {
		update = update.Set("critical_question", *params.CriticalQuestion)
	}
	if params.Counterargument != nil {
		update = update.Set("counterargument", *params.Counterargument)
	}
	if params.PersonalReflection != nil {
		update = update.Set("personal_reflection", *params.PersonalReflection)
	}

	query, args, err := update.
		Suffix("RETURNING " + strings.Join(opinionColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	op, err := scanOpinion(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "opinion_entry", opinionID)
	}

	return op, nil
}

// Delete removes an opinion entry permanently. Returns domain.ErrNotFound
// if the entry does not exist or belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, opinionID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Delete("opinion_entries").
		Where(sq.Eq{"id": opinionID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "opinion_entry", opinionID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("opinion_entry %s: %w", opinionID, domain.ErrNotFound)
	}

	return nil
}

// DeleteBySource removes all opinions derived from a corpus entry.
// Not ownership-scoped: callers verify corpus ownership before cascading.
// Idempotent: deleting for a source with no opinions is not an error.
// Returns the number of deleted rows.
func (r *Repo) DeleteBySource(ctx context.Context, sourceID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Delete("opinion_entries").
		Where(sq.Eq{"source_id": sourceID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete opinions by source: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// scanOpinion reads one opinion_entries row in opinionColumns order.
func scanOpinion(row pgx.Row) (*domain.OpinionEntry, error) {
	var op domain.OpinionEntry

	err := row.Scan(
		&op.ID, &op.UserID, &op.SourceID, &op.Content, &op.Theme,
		&op.SubThemes, &op.Tags, &op.SupportingFacts,
		&op.CriticalQuestion, &op.Counterargument, &op.PersonalReflection,
		&op.Archived, &op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &op, nil
}

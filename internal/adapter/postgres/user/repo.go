// Package user implements the user repository using PostgreSQL.
package user

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

var userColumns = []string{
	"id", "username", "email", "password_hash",
	"total_corpus", "total_vocabulary", "total_opinions", "last_active",
	"created_at", "updated_at",
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	u, err := scanUser(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "user", userID)
	}

	return u, nil
}

// GetByUsername returns a user by their unique username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	u, err := scanUser(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "user", uuid.Nil)
	}

	return u, nil
}

// Create inserts a new user and returns the persisted row.
// Returns domain.ErrAlreadyExists on username or email collision.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	// Optional email is stored as NULL so the unique index ignores it.
	var email any
	if u.Email != "" {
		email = u.Email
	}

	query, args, err := psql.Insert("users").
		Columns("id", "username", "email", "password_hash").
		Values(u.ID, u.Username, email, u.PasswordHash).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	created, err := scanUser(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "user", u.ID)
	}

	return created, nil
}

// UpdateProfile updates username and/or email. Nil fields are left unchanged.
func (r *Repo) UpdateProfile(ctx context.Context, userID uuid.UUID, username, email *string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	update := psql.Update("users").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": userID})

	if username != nil {
		update = update.Set("username", *username)
	}
	if email != nil {
		if *email == "" {
			update = update.Set("email", nil)
		} else {
			update = update.Set("email", *email)
		}
	}

	query, args, err := update.
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	u, err := scanUser(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "user", userID)
	}

	return u, nil
}

// UpdateStatistics overwrites the denormalized statistics columns with
// freshly computed values and bumps last_active.
func (r *Repo) UpdateStatistics(ctx context.Context, userID uuid.UUID, stats domain.UserStatistics) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Update("users").
		Set("total_corpus", stats.TotalCorpus).
		Set("total_vocabulary", stats.TotalVocabulary).
		Set("total_opinions", stats.TotalOpinions).
		Set("last_active", stats.LastActive).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "user", userID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}

	return nil
}

// scanUser reads one users row in userColumns order.
func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u     domain.User
		email *string
	)

	err := row.Scan(
		&u.ID, &u.Username, &email, &u.PasswordHash,
		&u.Statistics.TotalCorpus, &u.Statistics.TotalVocabulary,
		&u.Statistics.TotalOpinions, &u.Statistics.LastActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email != nil {
		u.Email = *email
	}

	return &u, nil
}

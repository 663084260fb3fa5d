package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Statistics   UserStatistics
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserStatistics is a denormalized cache of per-user counts. It is always
// recomputed from source-of-truth counts, never incremented, and read paths
// must tolerate staleness.
type UserStatistics struct {
	TotalCorpus     int
	TotalVocabulary int
	TotalOpinions   int
	LastActive      time.Time
}

package corpus

import "github.com/linxiao/corpora/internal/domain"

// Pagination describes the page slice returned by List.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// ListResult is a page of corpus entries plus pagination metadata.
type ListResult struct {
	Entries    []*domain.CorpusEntry
	Pagination Pagination
}

// StatsResult is the per-theme rollup of a user's corpus.
type StatsResult struct {
	Total           int
	ByTheme         []domain.ThemeAggregate
	TotalVocabulary int
}

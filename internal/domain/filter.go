package domain

// CorpusFilter narrows and paginates corpus listing queries.
// Theme matches the primary theme exactly; Search matches title or content
// case-insensitively. Limit and Offset must already be clamped by the caller.
type CorpusFilter struct {
	Theme  string
	Search string
	Limit  int
	Offset int
}

// OpinionFilter narrows and paginates opinion listing queries.
type OpinionFilter struct {
	Theme  string
	Limit  int
	Offset int
}

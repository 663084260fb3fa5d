package domain

// ThemeAggregate is one row of a per-theme rollup: how many entries carry
// the theme as primary and how many vocabulary items those entries hold.
type ThemeAggregate struct {
	Theme           string
	EntryCount      int
	VocabularyCount int
}

package ai

import "github.com/linxiao/corpora/internal/domain"

// AnalysisResult is the normalized, schema-valid output of the analysis
// pipeline. Every field is guaranteed present after Normalize.
type AnalysisResult struct {
	Summary     string                  `json:"summary"`
	Translation string                  `json:"translation"`
	Vocabulary  []domain.VocabularyItem `json:"vocabulary"`
	Opinion     OpinionAnalysis         `json:"opinion"`
	Themes      domain.Themes           `json:"themes"`
	Tags        []string                `json:"tags"`
}

// OpinionAnalysis is the argumentative breakdown of the analyzed text.
// An empty CoreViewpoint means no opinion was extracted.
type OpinionAnalysis struct {
	CoreViewpoint      string   `json:"coreViewpoint"`
	SupportingEvidence []string `json:"supportingEvidence"`
	CriticalQuestion   string   `json:"criticalQuestion"`
	Counterargument    string   `json:"counterargument"`
}

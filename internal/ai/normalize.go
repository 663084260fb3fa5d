package ai

import (
	"strings"

	"github.com/linxiao/corpora/internal/domain"
)

// SummaryFallback is substituted when the model returns no usable summary.
const SummaryFallback = "Summary generation failed"

// defaultReason labels vocabulary items whose reason the model omitted.
const defaultReason = "Important vocabulary"

// sentenceSnippetLen bounds the originalSentence fallback taken from the
// source text.
const sentenceSnippetLen = 200

// Normalize converts an arbitrary, possibly-malformed JSON value purportedly
// describing a text analysis into a schema-valid AnalysisResult. It is pure
// and total: missing keys, wrong-typed fields, and nulls all degrade to
// defaults instead of failing. originalText serves as fallback content for
// the translation and vocabulary sentence snippets.
func Normalize(raw any, originalText string) AnalysisResult {
	obj, _ := raw.(map[string]any)

	result := AnalysisResult{
		Summary:     stringField(obj, "summary", SummaryFallback),
		Translation: stringField(obj, "translation", originalText),
		Vocabulary:  normalizeVocabulary(obj["vocabulary"], originalText),
		Opinion:     normalizeOpinion(obj["opinion"]),
		Themes:      domain.NormalizeThemes(obj["themes"]),
		Tags:        stringList(obj["tags"]),
	}

	return result
}

// normalizeVocabulary applies the per-item repair policy: drop entries that
// are not objects or lack a non-empty word; default every other field.
// Valid items are kept in their original order.
func normalizeVocabulary(raw any, originalText string) []domain.VocabularyItem {
	items, ok := raw.([]any)
	if !ok {
		return []domain.VocabularyItem{}
	}

	out := make([]domain.VocabularyItem, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}

		word := stringField(m, "word", "")
		if strings.TrimSpace(word) == "" {
			continue
		}

		collocation := stringField(m, "collocation", "")
		usageFallback := collocation
		if usageFallback == "" {
			usageFallback = word
		}

		out = append(out, domain.VocabularyItem{
			Word:             word,
			Meaning:          stringField(m, "meaning", ""),
			OriginalSentence: stringField(m, "originalSentence", snippet(originalText)),
			Collocation:      collocation,
			Reason:           stringField(m, "reason", defaultReason),
			UsageScenario:    stringField(m, "usageScenario", "Example: "+usageFallback),
		})
	}

	return out
}

func normalizeOpinion(raw any) OpinionAnalysis {
	m, ok := raw.(map[string]any)
	if !ok {
		return OpinionAnalysis{SupportingEvidence: []string{}}
	}

	return OpinionAnalysis{
		CoreViewpoint:      stringField(m, "coreViewpoint", ""),
		SupportingEvidence: stringList(m["supportingEvidence"]),
		CriticalQuestion:   stringField(m, "criticalQuestion", ""),
		Counterargument:    stringField(m, "counterargument", ""),
	}
}

// snippet returns roughly the first 200 characters of text plus an ellipsis.
func snippet(text string) string {
	runes := []rune(text)
	if len(runes) > sentenceSnippetLen {
		runes = runes[:sentenceSnippetLen]
	}
	return string(runes) + "..."
}

// stringField reads a non-empty string value from m, or the fallback.
func stringField(m map[string]any, key, fallback string) string {
	if m == nil {
		return fallback
	}
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// stringList coerces a JSON array to its string members, dropping the rest.
func stringList(raw any) []string {
	items, ok := raw.([]any)
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

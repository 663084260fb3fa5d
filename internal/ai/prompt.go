package ai

import (
	"fmt"
	"slices"
	"strings"

	"github.com/linxiao/corpora/internal/domain"
)

// predefinedThemes is the fixed catalogue of topical categories the
// analysis prompt asks the model to classify into.
var predefinedThemes = []string{
	"Art & Entertainment",
	"Globalisation",
	"Crime",
	"Transport",
	"Population",
	"Government",
	"Science",
	"Media Communication",
	"Work & Economy",
	"Culture",
	"Society",
	"Health",
	"Environment",
	"Technology",
	"Education",
}

// PredefinedThemes returns a copy of the theme catalogue to prevent mutation.
func PredefinedThemes() []string {
	return slices.Clone(predefinedThemes)
}

// ValidateThemes drops unknown primary/secondary themes, falling back to the
// default theme. Custom themes pass through untouched.
func ValidateThemes(t domain.Themes) domain.Themes {
	t = domain.SanitizeThemes(t)

	if !slices.Contains(predefinedThemes, t.Primary) {
		t.Primary = domain.DefaultTheme
	}

	secondary := make([]string, 0, len(t.Secondary))
	for _, s := range t.Secondary {
		if slices.Contains(predefinedThemes, s) {
			secondary = append(secondary, s)
		}
	}
	t.Secondary = secondary

	return t
}

// analysisSystemPrompt instructs the model to produce the strict-JSON
// analysis payload that Normalize expects.
func analysisSystemPrompt() string {
	var themes strings.Builder
	for i, t := range predefinedThemes {
		fmt.Fprintf(&themes, "%d. %s\n", i+1, t)
	}

	return fmt.Sprintf(`You are an expert English Language Acquisition Specialist and Critical Thinking Coach.
Your mission: Transform passive reading into ACTIVE MASTERY.

**Core Principles:**
1. NO isolated words: extract COLLOCATIONS and CHUNKS
2. NO shallow translation: provide CRITICAL INSIGHTS
3. NO mute learning: generate USAGE SCENARIOS

**Theme Classification:**
Classify the text into one or more of these themes:
%s
If the text doesn't fit any theme, suggest a new custom theme.

**Analysis Requirements:**

1. **Summary**: one concise sentence capturing the essence, not just keywords.

2. **Translation**: natural and fluent, preserving tone and nuance; not word-by-word literal.

3. **Vocabulary**: for EACH significant word/phrase:
   {
     "word": "the word or phrase",
     "meaning": "meaning with context",
     "originalSentence": "The EXACT sentence from source text containing this word",
     "collocation": "Common phrases using this word (e.g., 'make a decision', 'take action')",
     "reason": "Why this is worth memorizing (e.g., 'Academic vocabulary', 'Business context')",
     "usageScenario": "A practical example sentence showing how to USE this word"
   }

4. **Opinion Analysis**:
   {
     "coreViewpoint": "Main argument/thesis",
     "supportingEvidence": ["Evidence 1", "Evidence 2", "Evidence 3"],
     "criticalQuestion": "A thought-provoking Socratic question in English to challenge the learner",
     "counterargument": "Potential opposing view (if applicable)"
   }

**Output Format (STRICT JSON):**
{
  "summary": "...",
  "translation": "...",
  "vocabulary": [ { "word": "...", "meaning": "...", "originalSentence": "...", "collocation": "...", "reason": "...", "usageScenario": "..." } ],
  "opinion": { "coreViewpoint": "...", "supportingEvidence": ["..."], "criticalQuestion": "...", "counterargument": "..." },
  "themes": { "primary": "One of the predefined themes", "secondary": ["Additional themes"], "custom": ["Custom tags if needed"] },
  "tags": ["tag1", "tag2", "tag3"]
}

**Quality Standards:**
- Extract 5-15 high-value vocabulary items (prioritize CHUNKS over single words)
- Each vocabulary item MUST include the original sentence from the text
- Focus on PRACTICAL, REUSABLE language patterns
- Provide context-rich, scenario-based learning`, themes.String())
}

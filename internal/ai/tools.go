package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linxiao/corpora/internal/domain"
)

// Toolkit exposes the single-purpose LLM helpers: context explanation,
// collocation generation, tone rewriting, and L1-interference detection.
type Toolkit struct {
	client *Client
	log    *slog.Logger
}

// NewToolkit creates a toolkit backed by the given client.
func NewToolkit(client *Client, log *slog.Logger) *Toolkit {
	return &Toolkit{
		client: client,
		log:    log.With(slog.String("component", "ai_toolkit")),
	}
}

// ExplainInContext explains what a word means in one specific sentence.
func (t *Toolkit) ExplainInContext(ctx context.Context, word, sentence string) (string, error) {
	if strings.TrimSpace(word) == "" || strings.TrimSpace(sentence) == "" {
		return "", ErrEmptyInput
	}

	system := fmt.Sprintf(`You are a Context Detective specializing in English vocabulary.

Your ONLY job is to explain what the word %[1]q means in THIS specific sentence.

Rules:
1. Ignore ALL other definitions of %[1]q
2. Focus ONLY on how it's used in this context
3. Explain in 1-2 clear sentences
4. Use simple, conversational language
5. If the word has multiple meanings, explain ONLY the one used here

Format:
In this sentence, %[1]q means [explanation]. [Optional: One example of similar usage]`, word)

	user := fmt.Sprintf("Word: %s\nSentence: %q\n\nExplain what %q means in THIS context.", word, sentence, word)

	content, err := t.client.Complete(ctx, Completion{
		System:      system,
		User:        user,
		Temperature: 0.3,
		MaxTokens:   150,
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(content), nil
}

// Collocations returns the five strongest collocations for a word.
// If the model response cannot be parsed as a JSON array, a generic
// fallback list is returned instead of an error.
func (t *Toolkit) Collocations(ctx context.Context, word string) ([]string, error) {
	if strings.TrimSpace(word) == "" {
		return nil, ErrEmptyInput
	}

	system := fmt.Sprintf(`You are a Collocation Architect specializing in natural English patterns.

Your job is to provide the 5 STRONGEST collocations for the word %q.

Rules:
1. Only provide REAL, commonly-used collocations
2. Focus on high-frequency patterns (Verb+Noun, Adj+Noun, Adv+Verb, etc.)
3. Prioritize natural, native-like combinations
4. Return ONLY a JSON array of 5 strings
5. Format: ["collocation1", "collocation2", "collocation3", "collocation4", "collocation5"]

Example output:
["make progress", "make sense", "make a decision", "make an effort", "make time"]`, word)

	user := fmt.Sprintf("Word: %s\n\nGenerate 5 strong collocations. Return ONLY the JSON array.", word)

	content, err := t.client.Complete(ctx, Completion{
		System:      system,
		User:        user,
		Temperature: 0.4,
		MaxTokens:   100,
	})
	if err != nil {
		return nil, err
	}

	collocations := parseCollocations(StripCodeFences(content))
	if collocations == nil {
		t.log.Warn("collocation payload unparseable, using fallback", slog.String("word", word))
		collocations = fallbackCollocations(word)
	}

	if len(collocations) > 5 {
		collocations = collocations[:5]
	}
	return collocations, nil
}

// parseCollocations accepts either a bare JSON array or an object wrapping
// one. Returns nil when no string list can be recovered.
func parseCollocations(content string) []string {
	var arr []string
	if err := json.Unmarshal([]byte(content), &arr); err == nil {
		return arr
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		return nil
	}
	if list, ok := obj["collocations"].([]any); ok {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func fallbackCollocations(word string) []string {
	return []string{
		"common " + word,
		word + " example",
		"typical " + word,
		"natural " + word,
		"frequent " + word,
	}
}

// toneInstructions describes each supported rewriting tone.
var toneInstructions = map[string]string{
	"formal":   "professional, academic, or business context. Use sophisticated vocabulary and complete sentence structures.",
	"casual":   "friendly, conversational setting. Use contractions, relaxed grammar, and everyday language.",
	"poetic":   "artistic, metaphorical style. Use imagery, rhythm, and creative expression.",
	"business": "corporate, professional communication. Be clear, concise, and action-oriented.",
}

// PolishTone rewrites a sentence into the target tone, preserving meaning.
// Surrounding quotes the model tends to add are stripped.
func (t *Toolkit) PolishTone(ctx context.Context, sentence, tone string) (string, error) {
	if strings.TrimSpace(sentence) == "" {
		return "", ErrEmptyInput
	}

	instructions, ok := toneInstructions[tone]
	if !ok {
		return "", domain.NewValidationError("tone", fmt.Sprintf("unsupported tone %q", tone))
	}

	system := fmt.Sprintf(`You are a Writing Stylist specializing in tone adaptation.

Your job is to rewrite the user's sentence to match the %s tone.

Target Tone: %s
Tone Description: %s

Rules:
1. PRESERVE the original meaning 100%%
2. ONLY change the style/tone, not the content
3. Keep the sentence length similar (within 20%%)
4. Return ONLY the rewritten sentence, no explanations
5. Make it sound natural and native-like

Example (Casual to Formal):
Original: "I really need your help with this"
Formal: "I would greatly appreciate your assistance with this matter"`,
		strings.ToUpper(tone), tone, instructions)

	user := fmt.Sprintf("Original sentence (rewrite this to be %s):\n%q", tone, sentence)

	content, err := t.client.Complete(ctx, Completion{
		System:      system,
		User:        user,
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		return "", err
	}

	polished := strings.TrimSpace(content)
	polished = strings.Trim(polished, `"'`)
	return polished, nil
}

// LogicCheckResult is the model's verdict on L1 interference in a sentence.
type LogicCheckResult struct {
	IsNativeLike      bool   `json:"isNativeLike"`
	DetectedL1Logic   string `json:"detectedL1Logic"`
	Explanation       string `json:"explanation"`
	BetterAlternative string `json:"betterAlternative"`
}

// l1Patterns lists known interference patterns per native language.
var l1Patterns = map[string]struct {
	Name     string
	Patterns []string
}{
	"zh-CN": {
		Name: "Chinese (Simplified)",
		Patterns: []string{
			`Topic-comment structure (e.g., "This book, I like")`,
			"Omitted subjects or articles",
			"Direct translation of measure words",
			`Literal time expressions (e.g., "up to now")`,
			`Overuse of "very" or "more"`,
		},
	},
}

// CheckLogic analyzes whether an English sentence shows L1 interference from
// the given native language. Unknown languages fall back to the default
// pattern set.
func (t *Toolkit) CheckLogic(ctx context.Context, sentence, nativeLanguage string) (*LogicCheckResult, error) {
	if strings.TrimSpace(sentence) == "" {
		return nil, ErrEmptyInput
	}

	l1, ok := l1Patterns[nativeLanguage]
	if !ok {
		l1 = l1Patterns["zh-CN"]
	}

	var patterns strings.Builder
	for i, p := range l1.Patterns {
		fmt.Fprintf(&patterns, "%d. %s\n", i+1, p)
	}

	system := fmt.Sprintf(`You are a Contrastive Linguistics Expert specializing in L1 transfer detection.

Target L1: %[1]s
Common %[1]s interference patterns:
%[2]s
Your job is to analyze if the user's English sentence shows L1 interference from %[1]s.

Analysis Framework:
1. Does the sentence sound like a native English speaker wrote it?
2. Are there any grammatical structures that suggest direct translation from %[1]s?
3. Are there word choices that feel unnatural but would make sense in %[1]s?
4. Is the sentence grammatically correct but pragmatically odd?

You MUST respond with ONLY a valid JSON object in this exact format:
{
  "isNativeLike": true or false,
  "detectedL1Logic": "specific pattern description" or null,
  "explanation": "detailed explanation of the issue",
  "betterAlternative": "the improved native-like version"
}

Rules:
- If the sentence is perfectly native-like, set isNativeLike to true and detectedL1Logic to null
- If there's ANY L1 interference, set isNativeLike to false and describe the specific pattern
- The betterAlternative should preserve the user's intended meaning 100%%
- Be specific and educational in your explanation`, l1.Name, patterns.String())

	user := fmt.Sprintf("Analyze this sentence for %s interference:\n\n%q\n\nReturn JSON analysis.", l1.Name, sentence)

	content, err := t.client.Complete(ctx, Completion{
		System:      system,
		User:        user,
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if err != nil {
		return nil, err
	}

	var result LogicCheckResult
	if err := json.Unmarshal([]byte(StripCodeFences(content)), &result); err != nil {
		return nil, fmt.Errorf("parse logic check payload: %v: %w", err, ErrMalformedResponse)
	}

	return &result, nil
}

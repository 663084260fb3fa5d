package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"github.com/linxiao/corpora/internal/domain"
)

func TestToolkit_ExplainInContext(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody(`In this sentence, "run" means to manage.`))
	})

	tk := NewToolkit(client, testLogger())
	got, err := tk.ExplainInContext(context.Background(), "run", "She runs a bakery.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `In this sentence, "run" means to manage.` {
		t.Errorf("got %q", got)
	}
}

func TestToolkit_ExplainInContext_EmptyInput(t *testing.T) {
	t.Parallel()

	tk := NewToolkit(nil, testLogger())
	if _, err := tk.ExplainInContext(context.Background(), "", "s"); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
	if _, err := tk.ExplainInContext(context.Background(), "w", " "); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
}

func TestToolkit_Collocations(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody(`["make progress","make sense","make a decision","make an effort","make time","extra one"]`))
	})

	tk := NewToolkit(client, testLogger())
	got, err := tk.Collocations(context.Background(), "make")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 collocations (truncated), got %d", len(got))
	}
	if got[0] != "make progress" {
		t.Errorf("got[0] = %q", got[0])
	}
}

func TestToolkit_Collocations_WrappedObject(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody(`{"collocations":["take action","take care"]}`))
	})

	tk := NewToolkit(client, testLogger())
	got, err := tk.Collocations(context.Background(), "take")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"take action", "take care"}) {
		t.Errorf("got %v", got)
	}
}

func TestToolkit_Collocations_FallbackOnGarbage(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody("Sorry, I cannot answer that."))
	})

	tk := NewToolkit(client, testLogger())
	got, err := tk.Collocations(context.Background(), "vivid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"common vivid", "vivid example", "typical vivid", "natural vivid", "frequent vivid"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want fallback %v", got, want)
	}
}

func TestToolkit_PolishTone_StripsQuotes(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody(`"I would greatly appreciate your assistance."`))
	})

	tk := NewToolkit(client, testLogger())
	got, err := tk.PolishTone(context.Background(), "I really need your help", "formal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "I would greatly appreciate your assistance." {
		t.Errorf("got %q", got)
	}
}

func TestToolkit_PolishTone_UnsupportedTone(t *testing.T) {
	t.Parallel()

	tk := NewToolkit(nil, testLogger())
	_, err := tk.PolishTone(context.Background(), "hello there", "sarcastic")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestToolkit_CheckLogic(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody("```json\n{\"isNativeLike\":false,\"detectedL1Logic\":\"topic-comment\",\"explanation\":\"e\",\"betterAlternative\":\"b\"}\n```"))
	})

	tk := NewToolkit(client, testLogger())
	got, err := tk.CheckLogic(context.Background(), "This book, I like very much.", "zh-CN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsNativeLike {
		t.Error("expected IsNativeLike = false")
	}
	if got.DetectedL1Logic != "topic-comment" || got.BetterAlternative != "b" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestToolkit_CheckLogic_NullDetectedPattern(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody(`{"isNativeLike":true,"detectedL1Logic":null,"explanation":"fine","betterAlternative":""}`))
	})

	tk := NewToolkit(client, testLogger())
	got, err := tk.CheckLogic(context.Background(), "I like this book very much.", "zh-CN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsNativeLike || got.DetectedL1Logic != "" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestToolkit_CheckLogic_MalformedPayload(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionBody("not json at all"))
	})

	tk := NewToolkit(client, testLogger())
	if _, err := tk.CheckLogic(context.Background(), "sentence", "zh-CN"); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"mathquiz/internal/quiz"
	"mathquiz/internal/testutil"
)

// TestGenerateNormalizesAnswers checks that mixed wire answers all come
// back as text, with booleans localized.
func TestGenerateNormalizesAnswers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"question_name": "perfect_square",
			"question": "Le nombre 49 est-il un carré parfait ?",
			"suggested_answer": [true, false],
			"index_answer": 0,
			"subject": "Arithmetic"
		}`))
	}))
	defer srv.Close()

	ctx := testutil.Context(t, 2*time.Second)
	question, err := New(srv.URL).Generate(ctx, quiz.GenerateRequest{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !slices.Equal(question.Options, []string{"Oui", "Non"}) {
		t.Fatalf("options = %v, want [Oui Non]", question.Options)
	}
	if question.Name != "perfect_square" || question.Subject != "Arithmetic" {
		t.Fatalf("unexpected question: %+v", question)
	}
	if err := question.Validate(); err != nil {
		t.Fatalf("normalized question invalid: %v", err)
	}
}

// TestGenerateSendsRequestFields checks the subjects filter and markup flag
// reach the wire.
func TestGenerateSendsRequestFields(t *testing.T) {
	var got generatePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"question_name": "q", "question": "?", "subject": "Algebra",
			"suggested_answer": ["1", "2"], "index_answer": 1
		}`))
	}))
	defer srv.Close()

	ctx := testutil.Context(t, 2*time.Second)
	_, err := New(srv.URL).Generate(ctx, quiz.GenerateRequest{
		Subjects:    []string{"Algebra", "Geometry"},
		WantsMarkup: true,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !slices.Equal(got.Subjects, []string{"Algebra", "Geometry"}) || !got.Latex {
		t.Fatalf("wire request = %+v", got)
	}
}

// TestGenerateHTTPError checks a server error surfaces with its code.
func TestGenerateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"generate_failed"}`))
	}))
	defer srv.Close()

	ctx := testutil.Context(t, 2*time.Second)
	_, err := New(srv.URL).Generate(ctx, quiz.GenerateRequest{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "generate_failed") {
		t.Fatalf("error %q does not carry the server code", err)
	}
}

// TestScoreRoundTrip checks the records are keyed by one-based ordinal and
// the summary string comes back decoded.
func TestScoreRoundTrip(t *testing.T) {
	var got scorePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/score" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`"Votre score est de 1 bonne réponse sur 2, soit 50% de réussite (150 points)"`))
	}))
	defer srv.Close()

	records := []quiz.AnswerRecord{
		{QuestionName: "trig_value", Subject: "Trigonometry", ElapsedSeconds: 1.2, Correct: true},
		{QuestionName: "prime_number", Subject: "Arithmetic", ElapsedSeconds: 3.4, Correct: false},
	}
	ctx := testutil.Context(t, 2*time.Second)
	score, err := New(srv.URL).Score(ctx, records)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if !strings.Contains(string(score), "50%") {
		t.Fatalf("score = %q", score)
	}

	if len(got.MetaData.Answers) != 2 {
		t.Fatalf("wire answers = %+v", got.MetaData.Answers)
	}
	first := got.MetaData.Answers["1"]
	if first.QuestionName != "trig_value" || !first.CorrectAnswer || first.TimeTaken != 1.2 {
		t.Fatalf("first record on the wire = %+v", first)
	}
	second := got.MetaData.Answers["2"]
	if second.Subject != "Arithmetic" || second.CorrectAnswer {
		t.Fatalf("second record on the wire = %+v", second)
	}
}

// TestScoreNonStringPayload checks an unexpected score shape is kept as raw
// JSON rather than rejected.
func TestScoreNonStringPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"points": 150}`))
	}))
	defer srv.Close()

	ctx := testutil.Context(t, 2*time.Second)
	score, err := New(srv.URL).Score(ctx, nil)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if string(score) != `{"points": 150}` {
		t.Fatalf("score = %q", score)
	}
}

// TestNormalizeOption covers the wire value kinds.
func TestNormalizeOption(t *testing.T) {
	cases := []struct {
		input any
		want  string
	}{
		{"$x+1$", "$x+1$"},
		{true, "Oui"},
		{false, "Non"},
		{float64(42), "42"},
		{2.5, "2.5"},
	}
	for _, tc := range cases {
		got, err := normalizeOption(tc.input)
		if err != nil {
			t.Fatalf("normalizeOption(%v) failed: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("normalizeOption(%v) = %q, want %q", tc.input, got, tc.want)
		}
	}
	if _, err := normalizeOption([]any{"x"}); err == nil {
		t.Fatal("expected an error for an array answer")
	}
}

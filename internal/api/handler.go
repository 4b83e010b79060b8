// Package api exposes the question generator and the scorer over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"mathquiz/internal/generator"
	"mathquiz/internal/quiz"
	"mathquiz/internal/scoring"
)

// Config wires dependencies for the HTTP handler.
type Config struct {
	Generator *generator.Generator
	Scorer    *scoring.Service
}

// NewHandler builds the HTTP handler for the quiz API. Responses carry
// permissive CORS headers so a browser frontend served elsewhere can call
// the daemon directly.
func NewHandler(cfg Config) http.Handler {
	h := &handler{
		generator: cfg.Generator,
		scorer:    cfg.Scorer,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/score", h.handleScore)
	mux.HandleFunc("/api/test", h.handleTest)
	return allowCORS(mux)
}

type handler struct {
	generator *generator.Generator
	scorer    *scoring.Service
}

func (h *handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.generator == nil {
		writeError(w, http.StatusInternalServerError, "backend_error")
		return
	}

	request := generateRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request")
			return
		}
	}

	markup := true
	if request.Latex != nil {
		markup = *request.Latex
	}
	result, err := h.generator.Generate(generator.Request{
		Subjects:           request.Subjects,
		Markup:             markup,
		ShuffleBooleanPair: true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "generate_failed")
		return
	}
	writeJSON(w, http.StatusOK, questionResponse{
		QuestionName:    result.Name,
		Question:        result.Question,
		SuggestedAnswer: wireAnswers(result.Suggested),
		IndexAnswer:     result.AnswerIndex,
		Subject:         result.Subject,
	})
}

func (h *handler) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.scorer == nil {
		writeError(w, http.StatusInternalServerError, "backend_error")
		return
	}

	var request scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	records, err := orderedRecords(request.MetaData.Answers)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	writeJSON(w, http.StatusOK, h.scorer.Tally(records).Summary())
}

// handleTest returns a fixed question so a frontend can be exercised
// without touching the generator.
func (h *handler) handleTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, questionResponse{
		QuestionName: "fixture",
		Question:     `Quelle est la valeur de $\cos^2(-\frac{\pi}{2})$ ?`,
		SuggestedAnswer: []any{
			`$2(x+1) (x-2)$`,
			`$\dfrac{\sqrt{2}}{2}$`,
			`$\sum_{i=4}^{10}(5i-1)^2$`,
			`$\dfrac{\sqrt{x}}{y}$`,
		},
		IndexAnswer: 0,
		Subject:     generator.SubjectTrigonometry,
	})
}

// orderedRecords converts the keyed answer map into records sorted by their
// one-based ordinal.
func orderedRecords(answers map[string]answerRecord) ([]quiz.AnswerRecord, error) {
	ordinals := make([]int, 0, len(answers))
	byOrdinal := make(map[int]answerRecord, len(answers))
	for key, record := range answers {
		ordinal, err := strconv.Atoi(key)
		if err != nil {
			return nil, err
		}
		ordinals = append(ordinals, ordinal)
		byOrdinal[ordinal] = record
	}
	sort.Ints(ordinals)

	records := make([]quiz.AnswerRecord, 0, len(ordinals))
	for _, ordinal := range ordinals {
		record := byOrdinal[ordinal]
		records = append(records, quiz.AnswerRecord{
			QuestionName:   record.QuestionName,
			Subject:        record.Subject,
			ElapsedSeconds: record.TimeTaken,
			Correct:        record.CorrectAnswer,
		})
	}
	return records, nil
}

func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package api

import (
	"encoding/json"
	"net/http"

	"mathquiz/internal/generator"
)

// questionResponse is the wire shape of a generated question. Suggested
// answers are strings except for yes/no questions, which stay booleans so
// clients can localize them.
type questionResponse struct {
	QuestionName    string `json:"question_name"`
	Question        string `json:"question"`
	SuggestedAnswer []any  `json:"suggested_answer"`
	IndexAnswer     int    `json:"index_answer"`
	Subject         string `json:"subject"`
}

type generateRequest struct {
	Subjects []string `json:"subjects"`
	Latex    *bool    `json:"latex"`
}

type scoreRequest struct {
	MetaData struct {
		Answers map[string]answerRecord `json:"answers"`
	} `json:"metaData"`
}

type answerRecord struct {
	QuestionName  string  `json:"question_name"`
	Subject       string  `json:"subject"`
	TimeTaken     float64 `json:"timeTaken"`
	CorrectAnswer bool    `json:"correct_answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func wireAnswers(suggested []generator.Answer) []any {
	answers := make([]any, len(suggested))
	for index, answer := range suggested {
		if answer.IsBool {
			answers[index] = answer.Bool
		} else {
			answers[index] = answer.Text
		}
	}
	return answers
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, _ := json.Marshal(payload)
	writeBytes(w, status, data)
}

func writeBytes(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

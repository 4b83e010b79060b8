// Package client talks to a quiz daemon over HTTP and adapts it to the
// session controller's source and scorer interfaces.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mathquiz/internal/quiz"
)

// Client implements quiz.QuestionSource and quiz.ScoreService against a
// remote mathquizd server.
type Client struct {
	baseURL string
	client  *http.Client
}

// New constructs a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: &http.Client{}}
}

// NewWithTimeout constructs a client for the given base URL with a request timeout.
func NewWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type generatePayload struct {
	Subjects []string `json:"subjects"`
	Latex    bool     `json:"latex"`
}

// questionPayload mirrors the daemon's question shape. Suggested answers
// may be strings or booleans on the wire.
type questionPayload struct {
	QuestionName    string `json:"question_name"`
	Question        string `json:"question"`
	SuggestedAnswer []any  `json:"suggested_answer"`
	IndexAnswer     int    `json:"index_answer"`
	Subject         string `json:"subject"`
}

type scorePayload struct {
	MetaData metaData `json:"metaData"`
}

type metaData struct {
	Answers map[string]answerPayload `json:"answers"`
}

type answerPayload struct {
	QuestionName  string  `json:"question_name"`
	Subject       string  `json:"subject"`
	TimeTaken     float64 `json:"timeTaken"`
	CorrectAnswer bool    `json:"correct_answer"`
}

// Generate requests a question over HTTP and normalizes the options: every
// suggested answer becomes text, booleans as Oui/Non.
func (c *Client) Generate(ctx context.Context, req quiz.GenerateRequest) (quiz.Question, error) {
	payload, err := json.Marshal(generatePayload{Subjects: req.Subjects, Latex: req.WantsMarkup})
	if err != nil {
		return quiz.Question{}, err
	}
	body, status, err := c.post(ctx, "/api/generate", payload)
	if err != nil {
		return quiz.Question{}, err
	}
	if status != http.StatusOK {
		return quiz.Question{}, decodeHTTPError(status, body)
	}
	var res questionPayload
	if err := json.Unmarshal(body, &res); err != nil {
		return quiz.Question{}, err
	}

	options := make([]string, 0, len(res.SuggestedAnswer))
	for _, answer := range res.SuggestedAnswer {
		text, err := normalizeOption(answer)
		if err != nil {
			return quiz.Question{}, err
		}
		options = append(options, text)
	}
	return quiz.Question{
		Name:         res.QuestionName,
		Subject:      res.Subject,
		Prompt:       res.Question,
		Options:      options,
		CorrectIndex: res.IndexAnswer,
	}, nil
}

// Score submits the answer records keyed by their one-based ordinal and
// returns the opaque score the server computed.
func (c *Client) Score(ctx context.Context, records []quiz.AnswerRecord) (quiz.ScoreValue, error) {
	answers := make(map[string]answerPayload, len(records))
	for index, record := range records {
		answers[strconv.Itoa(index+1)] = answerPayload{
			QuestionName:  record.QuestionName,
			Subject:       record.Subject,
			TimeTaken:     record.ElapsedSeconds,
			CorrectAnswer: record.Correct,
		}
	}
	payload, err := json.Marshal(scorePayload{MetaData: metaData{Answers: answers}})
	if err != nil {
		return "", err
	}
	body, status, err := c.post(ctx, "/api/score", payload)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", decodeHTTPError(status, body)
	}

	// The score is opaque: a bare JSON string passes through unchanged,
	// anything else keeps its raw JSON form.
	var text string
	if err := json.Unmarshal(body, &text); err == nil {
		return quiz.ScoreValue(text), nil
	}
	return quiz.ScoreValue(bytes.TrimSpace(body)), nil
}

// normalizeOption turns one wire answer into display text. Booleans become
// Oui/Non, numbers drop their decimal artifacts.
func normalizeOption(answer any) (string, error) {
	switch value := answer.(type) {
	case string:
		return value, nil
	case bool:
		if value {
			return "Oui", nil
		}
		return "Non", nil
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported suggested answer %T", answer)
	}
}

func (c *Client) post(ctx context.Context, path string, payload []byte) ([]byte, int, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func decodeHTTPError(status int, body []byte) error {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		return fmt.Errorf("http %d: %s", status, resp.Error)
	}
	return fmt.Errorf("http %d", status)
}

var _ quiz.QuestionSource = (*Client)(nil)
var _ quiz.ScoreService = (*Client)(nil)

package generator

import (
	"context"
	"fmt"

	"mathquiz/internal/quiz"
)

// Source adapts a Generator to the session controller's question source,
// for play without a server. Boolean answers are localized to Oui/Non here,
// the same normalization the HTTP client applies.
type Source struct {
	Generator *Generator
}

// Generate implements quiz.QuestionSource.
func (s Source) Generate(_ context.Context, request quiz.GenerateRequest) (quiz.Question, error) {
	result, err := s.Generator.Generate(Request{
		Subjects:           request.Subjects,
		Markup:             request.WantsMarkup,
		ShuffleBooleanPair: true,
	})
	if err != nil {
		return quiz.Question{}, fmt.Errorf("generate question: %w", err)
	}

	options := make([]string, len(result.Suggested))
	for index, answer := range result.Suggested {
		options[index] = answerText(answer)
	}
	return quiz.Question{
		Name:         result.Name,
		Subject:      result.Subject,
		Prompt:       result.Question,
		Options:      options,
		CorrectIndex: result.AnswerIndex,
	}, nil
}

func answerText(answer Answer) string {
	if !answer.IsBool {
		return answer.Text
	}
	if answer.Bool {
		return "Oui"
	}
	return "Non"
}

package service

import (
	"context"
	"errors"

	"quiz-api/internal/models"
	"quiz-api/internal/repository"
	"quiz-api/internal/table"
)

type AnswerService struct {
	Answers   *repository.AnswerRepository
	Questions *repository.QuestionRepository
}

func NewAnswerService(answers *repository.AnswerRepository, questions *repository.QuestionRepository) *AnswerService {
	return &AnswerService{Answers: answers, Questions: questions}
}

// ListAnswers returns every answer recorded during an attempt, each joined
// with its question's text and correct answer for review display.
func (s *AnswerService) ListAnswers(ctx context.Context, userID, quizID, attemptID string) ([]models.Answer, error) {
	answers, err := s.Answers.FindByAttempt(ctx, userID, quizID, attemptID)
	if err != nil {
		return nil, err
	}
	for i := range answers {
		question, err := s.Questions.FindByID(ctx, quizID, answers[i].QuestionID)
		if errors.Is(err, table.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		answers[i].QuestionText = question.Text
		answers[i].CorrectAnswer = question.CorrectAnswer
	}
	return answers, nil
}

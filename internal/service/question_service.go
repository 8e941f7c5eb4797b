package service

import (
	"context"
	"errors"

	"quiz-api/internal/models"
	"quiz-api/internal/repository"
	"quiz-api/internal/table"

	"github.com/google/uuid"
)

type QuestionService struct {
	Questions *repository.QuestionRepository
	Quizzes   *repository.QuizRepository
}

func NewQuestionService(questions *repository.QuestionRepository, quizzes *repository.QuizRepository) *QuestionService {
	return &QuestionService{Questions: questions, Quizzes: quizzes}
}

func (s *QuestionService) CreateQuestion(ctx context.Context, quizID, text string, options []string, correctAnswer string) (*models.Question, error) {
	if text == "" || len(options) == 0 || correctAnswer == "" {
		return nil, validationf("questionText, options and correctAnswer are required")
	}
	if _, err := s.Quizzes.FindByID(ctx, quizID); errors.Is(err, table.ErrRecordNotFound) {
		return nil, notFoundf("quiz not found")
	} else if err != nil {
		return nil, err
	}
	question := &models.Question{
		ID:            uuid.NewString(),
		Text:          text,
		Options:       options,
		CorrectAnswer: correctAnswer,
	}
	if err := s.Questions.Create(ctx, quizID, question); err != nil {
		return nil, err
	}
	return question, nil
}

// ListQuestions returns the quiz's questions, correct answers included; this
// feeds the administrative surface, not the attempt flow.
func (s *QuestionService) ListQuestions(ctx context.Context, quizID string) ([]models.Question, error) {
	return s.Questions.FindByQuiz(ctx, quizID)
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, quizID, questionID, text string, options []string, correctAnswer string) error {
	if text == "" || len(options) == 0 || correctAnswer == "" {
		return validationf("questionText, options and correctAnswer are required")
	}
	err := s.Questions.Update(ctx, quizID, questionID, text, options, correctAnswer)
	if errors.Is(err, table.ErrRecordNotFound) {
		return notFoundf("question not found")
	}
	return err
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, quizID, questionID string) error {
	return s.Questions.Delete(ctx, quizID, questionID)
}

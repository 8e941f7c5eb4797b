package service

import (
	"context"
	"errors"

	"quiz-api/internal/models"
	"quiz-api/internal/repository"
	"quiz-api/internal/table"

	"github.com/google/uuid"
)

type QuizService struct {
	Quizzes   *repository.QuizRepository
	Questions *repository.QuestionRepository
}

func NewQuizService(quizzes *repository.QuizRepository, questions *repository.QuestionRepository) *QuizService {
	return &QuizService{Quizzes: quizzes, Questions: questions}
}

func (s *QuizService) CreateQuiz(ctx context.Context, title, description string) (*models.Quiz, error) {
	if title == "" {
		return nil, validationf("title is required")
	}
	quiz := &models.Quiz{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Visible:     true,
	}
	if err := s.Quizzes.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// GetQuiz returns the metadata row together with the question count.
func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if errors.Is(err, table.ErrRecordNotFound) {
		return nil, notFoundf("quiz not found")
	}
	if err != nil {
		return nil, err
	}
	questions, err := s.Questions.FindByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	quiz.QuestionCount = len(questions)
	return quiz, nil
}

// ListVisibleQuizzes returns only quizzes whose visibility flag is set.
func (s *QuizService) ListVisibleQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return s.Quizzes.FindAllVisible(ctx)
}

func (s *QuizService) UpdateQuiz(ctx context.Context, quizID, title, description string) error {
	if title == "" {
		return validationf("title is required")
	}
	err := s.Quizzes.Update(ctx, quizID, title, description)
	if errors.Is(err, table.ErrRecordNotFound) {
		return notFoundf("quiz not found")
	}
	return err
}

func (s *QuizService) SetQuizVisibility(ctx context.Context, quizID string, visible bool) error {
	err := s.Quizzes.SetVisibility(ctx, quizID, visible)
	if errors.Is(err, table.ErrRecordNotFound) {
		return notFoundf("quiz not found")
	}
	return err
}

// DeleteQuiz removes the quiz and every question it owns.
func (s *QuizService) DeleteQuiz(ctx context.Context, quizID string) error {
	err := s.Quizzes.DeleteCascade(ctx, quizID)
	if errors.Is(err, table.ErrRecordNotFound) {
		return notFoundf("quiz not found")
	}
	return err
}

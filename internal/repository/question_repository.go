package repository

import (
	"context"

	"quiz-api/internal/models"
	"quiz-api/internal/table"

	"go.mongodb.org/mongo-driver/bson"
)

type QuestionRepository struct {
	Store table.Store
}

func NewQuestionRepository(store table.Store) *QuestionRepository {
	return &QuestionRepository{Store: store}
}

func (r *QuestionRepository) Create(ctx context.Context, quizID string, question *models.Question) error {
	key := table.QuestionKey(quizID, question.ID)
	question.PK = key.PK
	question.SK = key.SK
	return r.Store.Put(ctx, question)
}

func (r *QuestionRepository) FindByID(ctx context.Context, quizID, questionID string) (*models.Question, error) {
	item, err := r.Store.Get(ctx, table.QuestionKey(quizID, questionID))
	if err != nil {
		return nil, err
	}
	return decodeQuestion(item)
}

func (r *QuestionRepository) FindByQuiz(ctx context.Context, quizID string) ([]models.Question, error) {
	items, err := r.Store.Query(ctx, table.QuizPartition(quizID), table.QuestionPrefix)
	if err != nil {
		return nil, err
	}
	questions := make([]models.Question, 0, len(items))
	for _, item := range items {
		question, err := decodeQuestion(item)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *question)
	}
	return questions, nil
}

func (r *QuestionRepository) Update(ctx context.Context, quizID, questionID, text string, options []string, correctAnswer string) error {
	return r.Store.Update(ctx, table.QuestionKey(quizID, questionID), table.FieldOps{
		Set: map[string]interface{}{
			"questionText":  text,
			"options":       options,
			"correctAnswer": correctAnswer,
		},
	})
}

func (r *QuestionRepository) Delete(ctx context.Context, quizID, questionID string) error {
	return r.Store.Delete(ctx, table.QuestionKey(quizID, questionID))
}

func decodeQuestion(item table.Item) (*models.Question, error) {
	var question models.Question
	if err := bson.Unmarshal(item, &question); err != nil {
		return nil, err
	}
	question.ID = table.IDFromSK(question.SK)
	return &question, nil
}

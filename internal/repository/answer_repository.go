package repository

import (
	"context"

	"quiz-api/internal/models"
	"quiz-api/internal/table"

	"go.mongodb.org/mongo-driver/bson"
)

type AnswerRepository struct {
	Store table.Store
}

func NewAnswerRepository(store table.Store) *AnswerRepository {
	return &AnswerRepository{Store: store}
}

func (r *AnswerRepository) Create(ctx context.Context, userID, quizID, attemptID string, answer *models.Answer) error {
	key := table.AnswerKey(userID, quizID, attemptID, answer.QuestionID)
	answer.PK = key.PK
	answer.SK = key.SK
	return r.Store.Put(ctx, answer)
}

func (r *AnswerRepository) FindByAttempt(ctx context.Context, userID, quizID, attemptID string) ([]models.Answer, error) {
	items, err := r.Store.Query(ctx, table.AnswerPartition(userID, quizID, attemptID), "")
	if err != nil {
		return nil, err
	}
	answers := make([]models.Answer, 0, len(items))
	for _, item := range items {
		var answer models.Answer
		if err := bson.Unmarshal(item, &answer); err != nil {
			return nil, err
		}
		answer.QuestionID = table.IDFromSK(answer.SK)
		answers = append(answers, answer)
	}
	return answers, nil
}

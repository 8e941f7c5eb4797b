package repository

import (
	"context"
	"time"

	"quiz-api/internal/models"
	"quiz-api/internal/table"

	"go.mongodb.org/mongo-driver/bson"
)

type AttemptRepository struct {
	Store table.Store
}

func NewAttemptRepository(store table.Store) *AttemptRepository {
	return &AttemptRepository{Store: store}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *models.Attempt) error {
	key := table.AttemptKey(attempt.UserID, attempt.QuizID, attempt.ID)
	attempt.PK = key.PK
	attempt.SK = key.SK
	return r.Store.Put(ctx, attempt)
}

func (r *AttemptRepository) FindByID(ctx context.Context, userID, quizID, attemptID string) (*models.Attempt, error) {
	item, err := r.Store.Get(ctx, table.AttemptKey(userID, quizID, attemptID))
	if err != nil {
		return nil, err
	}
	var attempt models.Attempt
	if err := bson.Unmarshal(item, &attempt); err != nil {
		return nil, err
	}
	attempt.ID = table.IDFromSK(attempt.SK)
	attempt.UserID = userID
	attempt.QuizID = quizID
	return &attempt, nil
}

// IncrementScore raises the score atomically; concurrent increments on the
// same attempt all apply.
func (r *AttemptRepository) IncrementScore(ctx context.Context, userID, quizID, attemptID string, delta int64) error {
	return r.Store.Update(ctx, table.AttemptKey(userID, quizID, attemptID), table.FieldOps{
		Inc: map[string]int64{"score": delta},
	})
}

// AdvanceTo moves the progress cursor from fromProgress to the next question.
// The condition on the observed progress means a concurrent advance loses with
// ErrConditionFailed instead of skipping a question.
func (r *AttemptRepository) AdvanceTo(ctx context.Context, userID, quizID, attemptID string, fromProgress int, nextQuestionID string) error {
	return r.Store.UpdateIf(ctx, table.AttemptKey(userID, quizID, attemptID),
		table.Cond{Equals: map[string]interface{}{"progress": fromProgress}},
		table.FieldOps{Set: map[string]interface{}{
			"progress":          fromProgress + 1,
			"currentQuestionId": nextQuestionID,
		}},
	)
}

// Complete stamps the completion timestamp exactly once. The unset condition
// keeps a second completion from moving the timestamp.
func (r *AttemptRepository) Complete(ctx context.Context, userID, quizID, attemptID string, finishedAt time.Time) error {
	return r.Store.UpdateIf(ctx, table.AttemptKey(userID, quizID, attemptID),
		table.Cond{Unset: []string{"dateFinished"}},
		table.FieldOps{Set: map[string]interface{}{"dateFinished": finishedAt}},
	)
}

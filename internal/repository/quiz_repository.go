package repository

import (
	"context"

	"quiz-api/internal/models"
	"quiz-api/internal/table"

	"go.mongodb.org/mongo-driver/bson"
)

type QuizRepository struct {
	Store table.Store
}

func NewQuizRepository(store table.Store) *QuizRepository {
	return &QuizRepository{Store: store}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	key := table.QuizKey(quiz.ID)
	quiz.PK = key.PK
	quiz.SK = key.SK
	return r.Store.Put(ctx, quiz)
}

func (r *QuizRepository) FindByID(ctx context.Context, quizID string) (*models.Quiz, error) {
	item, err := r.Store.Get(ctx, table.QuizKey(quizID))
	if err != nil {
		return nil, err
	}
	return decodeQuiz(item)
}

// FindAllVisible returns every quiz metadata row with visible set.
func (r *QuizRepository) FindAllVisible(ctx context.Context) ([]models.Quiz, error) {
	items, err := r.Store.Scan(ctx, "QUIZ#", table.MetadataSK)
	if err != nil {
		return nil, err
	}
	var quizzes []models.Quiz
	for _, item := range items {
		quiz, err := decodeQuiz(item)
		if err != nil {
			return nil, err
		}
		if quiz.Visible {
			quizzes = append(quizzes, *quiz)
		}
	}
	return quizzes, nil
}

func (r *QuizRepository) Update(ctx context.Context, quizID, title, description string) error {
	return r.Store.Update(ctx, table.QuizKey(quizID), table.FieldOps{
		Set: map[string]interface{}{"title": title, "description": description},
	})
}

func (r *QuizRepository) SetVisibility(ctx context.Context, quizID string, visible bool) error {
	return r.Store.Update(ctx, table.QuizKey(quizID), table.FieldOps{
		Set: map[string]interface{}{"visible": visible},
	})
}

// DeleteCascade removes the metadata row and every question in the quiz
// partition. Returns ErrRecordNotFound when the partition is empty.
func (r *QuizRepository) DeleteCascade(ctx context.Context, quizID string) error {
	pk := table.QuizPartition(quizID)
	items, err := r.Store.Query(ctx, pk, "")
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return table.ErrRecordNotFound
	}
	for _, item := range items {
		sk, _ := item.Lookup("sk").StringValueOK()
		if err := r.Store.Delete(ctx, table.Key{PK: pk, SK: sk}); err != nil {
			return err
		}
	}
	return nil
}

func decodeQuiz(item table.Item) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := bson.Unmarshal(item, &quiz); err != nil {
		return nil, err
	}
	quiz.ID = table.IDFromSK(quiz.PK)
	return &quiz, nil
}

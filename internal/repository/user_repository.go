package repository

import (
	"context"

	"quiz-api/internal/models"
	"quiz-api/internal/table"

	"go.mongodb.org/mongo-driver/bson"
)

type UserRepository struct {
	Store table.Store
}

func NewUserRepository(store table.Store) *UserRepository {
	return &UserRepository{Store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	key := table.UserKey(user.ID)
	user.PK = key.PK
	user.SK = key.SK
	return r.Store.Put(ctx, user)
}

func (r *UserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	item, err := r.Store.Get(ctx, table.UserKey(userID))
	if err != nil {
		return nil, err
	}
	return decodeUser(item)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	items, err := r.Store.Scan(ctx, "USER#", table.MetadataSK)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(items))
	for _, item := range items {
		user, err := decodeUser(item)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, userID string, fields map[string]interface{}) error {
	return r.Store.Update(ctx, table.UserKey(userID), table.FieldOps{Set: fields})
}

// Delete removes the user's metadata row. The existence check comes first
// because the store's Delete is a no-op on absent keys.
func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	key := table.UserKey(userID)
	if _, err := r.Store.Get(ctx, key); err != nil {
		return err
	}
	return r.Store.Delete(ctx, key)
}

func decodeUser(item table.Item) (*models.User, error) {
	var user models.User
	if err := bson.Unmarshal(item, &user); err != nil {
		return nil, err
	}
	user.ID = table.IDFromSK(user.PK)
	return &user, nil
}

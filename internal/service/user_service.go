package service

import (
	"context"
	"errors"

	"quiz-api/internal/models"
	"quiz-api/internal/repository"
	"quiz-api/internal/table"

	"github.com/google/uuid"
)

type UserService struct {
	Users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{Users: users}
}

func (s *UserService) CreateUser(ctx context.Context, userName, fullName, email, role string) (*models.User, error) {
	if userName == "" || email == "" {
		return nil, validationf("userName and email are required")
	}
	user := &models.User{
		ID:       uuid.NewString(),
		UserName: userName,
		FullName: fullName,
		Email:    email,
		Role:     role,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if errors.Is(err, table.ErrRecordNotFound) {
		return nil, notFoundf("user not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Users.FindAll(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return validationf("no valid attributes to update")
	}
	err := s.Users.Update(ctx, userID, fields)
	if errors.Is(err, table.ErrRecordNotFound) {
		return notFoundf("user not found")
	}
	return err
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	err := s.Users.Delete(ctx, userID)
	if errors.Is(err, table.ErrRecordNotFound) {
		return notFoundf("user not found")
	}
	return err
}

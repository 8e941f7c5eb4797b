package service

import (
	"context"
	"testing"

	"quiz-api/internal/repository"
)

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	users := NewUserService(repository.NewUserRepository(f.store))

	user, err := users.CreateUser(ctx, "jdoe", "Jordan Doe", "jdoe@example.com", "student")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected a generated user id")
	}

	got, err := users.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.UserName != "jdoe" || got.Email != "jdoe@example.com" {
		t.Errorf("unexpected user %+v", got)
	}

	if err := users.UpdateUser(ctx, user.ID, map[string]interface{}{"role": "admin"}); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	got, _ = users.GetUser(ctx, user.ID)
	if got.Role != "admin" {
		t.Errorf("expected role admin, got %s", got.Role)
	}

	all, err := users.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 user, got %d", len(all))
	}

	if err := users.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if _, err := users.GetUser(ctx, user.ID); KindOf(err) != KindNotFound {
		t.Errorf("expected NotFound after delete, got %v", err)
	}
}

func TestUserErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	users := NewUserService(repository.NewUserRepository(f.store))

	if _, err := users.CreateUser(ctx, "", "x", "", "student"); KindOf(err) != KindValidation {
		t.Errorf("expected Validation, got %v", err)
	}
	if _, err := users.GetUser(ctx, "missing"); KindOf(err) != KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
	if err := users.UpdateUser(ctx, "missing", map[string]interface{}{"role": "x"}); KindOf(err) != KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
	if err := users.UpdateUser(ctx, "missing", nil); KindOf(err) != KindValidation {
		t.Errorf("expected Validation for empty update, got %v", err)
	}
	if err := users.DeleteUser(ctx, "missing"); KindOf(err) != KindNotFound {
		t.Errorf("expected NotFound for deleting missing user, got %v", err)
	}
}

package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/myit/inventory/internal/db"
	"github.com/myit/inventory/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "testuser", "hash123", model.RoleViewer)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Username != "testuser" {
		t.Errorf("expected username 'testuser', got %q", user.Username)
	}
	if user.Role != model.RoleViewer {
		t.Errorf("expected role 'viewer', got %q", user.Role)
	}
	if user.CreatedAt == "" {
		t.Error("expected created_at to be set")
	}

	got, err := GetUser(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Username != "testuser" {
		t.Errorf("expected username 'testuser', got %q", got.Username)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, _ := CreateUser(ctx, database, "alice", "hash-a", model.RoleEditor)

	_, err := CreateUser(ctx, database, "alice", "hash-b", model.RoleViewer)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	got, _ := GetUser(ctx, database, first.ID)
	if got.PasswordHash != "hash-a" || got.Role != model.RoleEditor {
		t.Errorf("existing user was altered: %+v", got)
	}
}

func TestGetUserByUsername(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "alice", "hash", model.RoleSuperadmin)

	user, err := GetUserByUsername(ctx, database, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}

	// Lookups are case-sensitive.
	missing, err := GetUserByUsername(ctx, database, "Alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for differently cased username")
	}
}

func TestListUsers(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "a", "hash", model.RoleViewer)
	CreateUser(ctx, database, "b", "hash", model.RoleEditor)

	users, err := ListUsers(ctx, database)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}

func TestUpdateUserKeepsPasswordWhenEmpty(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "bob", "oldhash", model.RoleViewer)

	if err := UpdateUser(ctx, database, user.ID, model.RoleEditor, ""); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	got, _ := GetUser(ctx, database, user.ID)
	if got.Role != model.RoleEditor {
		t.Errorf("expected role 'editor', got %q", got.Role)
	}
	if got.PasswordHash != "oldhash" {
		t.Errorf("expected password hash to be kept, got %q", got.PasswordHash)
	}

	if err := UpdateUser(ctx, database, user.ID, model.RoleViewer, "newhash"); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	got, _ = GetUser(ctx, database, user.ID)
	if got.Role != model.RoleViewer || got.PasswordHash != "newhash" {
		t.Errorf("expected role and hash to change, got %+v", got)
	}
}

func TestUpdateMissingUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	err := UpdateUser(ctx, database, 42, model.RoleViewer, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	err = UpdateUserPassword(ctx, database, 42, "hash")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "deleteme", "hash", model.RoleViewer)
	if err := DeleteUser(ctx, database, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := DeleteUser(ctx, database, user.ID); err != nil {
		t.Errorf("second DeleteUser should succeed, got %v", err)
	}

	n, _ := CountUsers(ctx, database)
	if n != 0 {
		t.Errorf("expected 0 users after delete, got %d", n)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "admin123" {
		t.Fatal("password stored in plain text")
	}
	if !CheckPassword(hash, "admin123") {
		t.Error("expected matching password to check")
	}
	if CheckPassword(hash, "Admin123") {
		t.Error("password comparison must be case-sensitive")
	}
}

func TestHashPasswordTooLong(t *testing.T) {
	if _, err := HashPassword(strings.Repeat("x", 72)); err != nil {
		t.Fatalf("72-byte password: %v", err)
	}
	_, err := HashPassword(strings.Repeat("x", 73))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}

package repository

import (
	"errors"
	"testing"

	"legalai-review/internal/model"
	"legalai-review/internal/platform/database"
)

func newUserFixture(t *testing.T) *UserRepository {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewUserRepository(db)
}

func TestUserRepository_CreateAndFetch(t *testing.T) {
	repo := newUserFixture(t)

	user := &model.User{Username: "alice", PasswordHash: "hash"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	byName, err := repo.GetByUsername("alice")
	if err != nil || byName == nil || byName.ID != user.ID {
		t.Fatalf("GetByUsername: got %+v, err %v", byName, err)
	}

	missing, err := repo.GetByUsername("nobody")
	if err != nil || missing != nil {
		t.Fatalf("an unknown username must yield nil, nil; got %+v, %v", missing, err)
	}
}

func TestUserRepository_DuplicateCreate(t *testing.T) {
	repo := newUserFixture(t)

	if err := repo.Create(&model.User{Username: "alice", PasswordHash: "first"}); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	// Bypasses the service's read-before-create, the way a concurrent
	// registration would.
	err := repo.Create(&model.User{Username: "alice", PasswordHash: "second"})
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername from the unique index, got %v", err)
	}

	stored, _ := repo.GetByUsername("alice")
	if stored.PasswordHash != "first" {
		t.Fatalf("the losing create must not overwrite the stored row")
	}
}

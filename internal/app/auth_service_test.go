package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"legalai-review/internal/model"
	"legalai-review/internal/pkg/jwtutil"
	"legalai-review/internal/platform/database"
	"legalai-review/internal/repository"
)

func newAuthFixture(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	userRepo := repository.NewUserRepository(db)
	return NewAuthService(userRepo, "test-secret", time.Hour), userRepo
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, userRepo := newAuthFixture(t)

	user, err := svc.Register(RegisterInput{Username: "alice", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("registered user must have an id")
	}

	stored, err := userRepo.GetByUsername("alice")
	if err != nil || stored == nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.PasswordHash == "correct-horse" {
		t.Fatalf("password must never be stored in the clear")
	}
	if !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", stored.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")); err != nil {
		t.Fatalf("stored hash must verify the original password: %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, userRepo := newAuthFixture(t)

	if _, err := svc.Register(RegisterInput{Username: "alice", Password: "correct-horse"}); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	original, _ := userRepo.GetByUsername("alice")

	_, err := svc.Register(RegisterInput{Username: "alice", Password: "another-pass"})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	after, _ := userRepo.GetByUsername("alice")
	if after.PasswordHash != original.PasswordHash {
		t.Fatalf("a rejected registration must not mutate the stored user")
	}
}

func TestRegister_RejectsWeakInput(t *testing.T) {
	svc, _ := newAuthFixture(t)

	cases := []RegisterInput{
		{Username: "", Password: "correct-horse"},
		{Username: "alice", Password: ""},
		{Username: "alice", Password: "short"},
		{Username: "   ", Password: "correct-horse"},
	}
	for _, c := range cases {
		if _, err := svc.Register(c); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Register(%+v): expected ErrInvalidInput, got %v", c, err)
		}
	}
}

func TestLogin_Succeeds(t *testing.T) {
	svc, _ := newAuthFixture(t)
	if _, err := svc.Register(RegisterInput{Username: "alice", Password: "correct-horse"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	result, err := svc.Login(LoginInput{Username: "alice", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" || result.User == nil {
		t.Fatalf("login must yield a token and the user")
	}

	claims, err := jwtutil.ParseToken("test-secret", result.Token)
	if err != nil {
		t.Fatalf("issued token must parse with the signing secret: %v", err)
	}
	if claims.UserID != result.User.ID || claims.Username != "alice" {
		t.Fatalf("token claims must identify the user, got %+v", claims)
	}
}

func TestLogin_GenericFailure(t *testing.T) {
	svc, _ := newAuthFixture(t)
	if _, err := svc.Register(RegisterInput{Username: "alice", Password: "correct-horse"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, wrongPass := svc.Login(LoginInput{Username: "alice", Password: "wrong-password"})
	_, unknownUser := svc.Login(LoginInput{Username: "nobody", Password: "correct-horse"})

	if !errors.Is(wrongPass, ErrInvalidCredential) || !errors.Is(unknownUser, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential for both cases, got %v and %v", wrongPass, unknownUser)
	}
	if wrongPass.Error() != unknownUser.Error() {
		t.Fatalf("login failures must not reveal whether the user exists")
	}
}

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/saunastroy/site/internal/store"
	"github.com/saunastroy/site/internal/testutil"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("changeme")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword returned empty hash")
	}
}

func TestCheckPassword_Correct(t *testing.T) {
	hash, err := HashPassword("changeme")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	valid, err := CheckPassword("changeme", hash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if !valid {
		t.Fatal("Correct password was rejected")
	}
}

func TestCheckPassword_Wrong(t *testing.T) {
	hash, err := HashPassword("changeme")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	valid, err := CheckPassword("wrongpassword", hash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if valid {
		t.Fatal("Wrong password was accepted")
	}
}

func TestCheckPassword_ForeignParameters(t *testing.T) {
	// Hash created with different argon2 parameters (m=65536,t=1,p=4); the
	// encoded parameters must be honored when verifying.
	foreign := "$argon2id$v=19$m=65536,t=1,p=4$mucMvOaS6lZ2LWNS1OEFKw$UYEWv8cvCOO6l2zGeqv3JPVe1nyy0x9GXBfYEuDM544"

	valid, err := CheckPassword("changeme", foreign)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if !valid {
		t.Fatal("hash with foreign parameters rejected correct password")
	}

	if !NeedsRehash(foreign) {
		t.Error("foreign-parameter hash should need a rehash")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if _, err := CheckPassword("x", "not-a-hash"); err == nil {
		t.Error("malformed hash should error")
	}
	if _, err := CheckPassword("x", "$bcrypt$v=19$m=1,t=1,p=1$salt$hash"); err == nil {
		t.Error("foreign hash type should error")
	}
}

func TestNeedsRehash_CurrentParameters(t *testing.T) {
	hash, err := HashPassword("changeme")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if NeedsRehash(hash) {
		t.Error("freshly created hash should not need a rehash")
	}
}

func TestAuthenticator(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if _, err := q.CreateAdminUser(ctx, store.CreateAdminUserParams{
		Email:        "admin@example.com",
		PasswordHash: hash,
		Name:         "Админ",
	}); err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}

	a := NewAuthenticator(q, testutil.TestLogger())

	user, err := a.Authenticate(ctx, "admin@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Errorf("Email = %q", user.Email)
	}

	if _, err := a.Authenticate(ctx, "admin@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := a.Authenticate(ctx, "ghost@example.com", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

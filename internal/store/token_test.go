package store

import (
	"testing"

	"github.com/mstrand/todoapi/internal/database"
)

func setupTokenTestDB(t *testing.T) (*TokenStore, *UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewTokenStore(db), NewUserStore(db)
}

func TestTokenCreate(t *testing.T) {
	ts, us := setupTokenTestDB(t)
	u := mustCreateUser(t, us, "alice@example.com")

	tok, err := ts.Create(u.ID, "authentication", "signed-token-string")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	if tok.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if tok.Token != "signed-token-string" {
		t.Errorf("token = %q, want %q", tok.Token, "signed-token-string")
	}
	if tok.UserID != u.ID {
		t.Errorf("user_id = %d, want %d", tok.UserID, u.ID)
	}
	if tok.Purpose != "authentication" {
		t.Errorf("purpose = %q, want %q", tok.Purpose, "authentication")
	}
}

func TestTokenGetByToken(t *testing.T) {
	ts, us := setupTokenTestDB(t)
	u := mustCreateUser(t, us, "alice@example.com")

	created, err := ts.Create(u.ID, "authentication", "signed-token-string")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	tok, err := ts.GetByToken("signed-token-string")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if tok == nil {
		t.Fatal("expected token, got nil")
	}
	if tok.ID != created.ID {
		t.Errorf("id = %d, want %d", tok.ID, created.ID)
	}
}

func TestTokenGetByTokenNotFound(t *testing.T) {
	ts, _ := setupTokenTestDB(t)

	tok, err := ts.GetByToken("never-issued")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if tok != nil {
		t.Error("expected nil for unknown token")
	}
}

func TestTokenDelete(t *testing.T) {
	ts, us := setupTokenTestDB(t)
	u := mustCreateUser(t, us, "alice@example.com")

	created, err := ts.Create(u.ID, "authentication", "signed-token-string")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if err := ts.Delete(created.ID); err != nil {
		t.Fatalf("delete token: %v", err)
	}

	tok, err := ts.GetByToken("signed-token-string")
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if tok != nil {
		t.Error("expected nil after delete")
	}
}

func TestTokenDeleteIdempotent(t *testing.T) {
	ts, us := setupTokenTestDB(t)
	u := mustCreateUser(t, us, "alice@example.com")

	created, err := ts.Create(u.ID, "authentication", "signed-token-string")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if err := ts.Delete(created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := ts.Delete(created.ID); err != nil {
		t.Fatalf("second delete should be a no-op, got: %v", err)
	}
}

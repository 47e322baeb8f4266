package store

import (
	"database/sql"
	"fmt"

	"github.com/mstrand/todoapi/internal/model"
)

type TokenStore struct {
	db *sql.DB
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db}
}

func scanToken(scanner interface{ Scan(...any) error }) (*model.Token, error) {
	var t model.Token
	err := scanner.Scan(&t.ID, &t.Token, &t.UserID, &t.Purpose, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const tokenCols = `id, token, user_id, purpose, created_at`

func (s *TokenStore) Create(userID int64, purpose, token string) (*model.Token, error) {
	result, err := s.db.Exec(
		`INSERT INTO tokens (token, user_id, purpose) VALUES (?, ?, ?)`,
		token, userID, purpose,
	)
	if err != nil {
		return nil, fmt.Errorf("insert token: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+tokenCols+` FROM tokens WHERE id = ?`, id)
	return scanToken(row)
}

// GetByToken returns the live record for the given token string, or nil if
// it was never issued or has been revoked.
func (s *TokenStore) GetByToken(token string) (*model.Token, error) {
	row := s.db.QueryRow(`SELECT `+tokenCols+` FROM tokens WHERE token = ?`, token)
	t, err := scanToken(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}
	return t, nil
}

// Delete revokes the token. Deleting an already-deleted token is a no-op.
func (s *TokenStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tokens WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Package auth implements registration, credential verification, and the
// token lifecycle. A token authenticates a request only when its signature
// verifies, its purpose matches, and a live record for it still exists in
// the store; revocation is record deletion.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mstrand/todoapi/internal/model"
	"github.com/mstrand/todoapi/internal/store"
	"github.com/mstrand/todoapi/internal/token"
)

// PurposeAuthentication is the purpose tag carried by login tokens.
const PurposeAuthentication = "authentication"

var (
	// ErrInvalidCredentials is returned by Authenticate for unknown email
	// and wrong password alike; callers cannot tell which.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned by ResolveToken for every failure
	// mode: bad signature, wrong purpose, revoked token, missing user.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// dummyHash is compared against when the email is unknown, so both
// Authenticate failure paths pay the bcrypt cost.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type Service struct {
	users  *store.UserStore
	tokens *store.TokenStore
	signer *token.Signer
}

func NewService(users *store.UserStore, tokens *store.TokenStore, signer *token.Signer) *Service {
	return &Service{users: users, tokens: tokens, signer: signer}
}

// Register validates the credentials, hashes the password, and persists the
// user. Returns *ValidationError for malformed input and
// store.ErrDuplicateEmail for a taken address.
func (s *Service) Register(email, password string) (*model.User, error) {
	v := newValidator()
	v.checkEmail(email)
	v.checkPassword(password)
	if err := v.err(); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.users.Create(email, hash)
}

// Authenticate looks the user up by email and verifies the password. Unknown
// email and wrong password return the identical error.
func (s *Service) Authenticate(email, password string) (*model.User, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if !VerifyPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueToken signs a new authentication token for the user and persists it.
func (s *Service) IssueToken(u *model.User) (*model.Token, error) {
	signed, err := s.signer.Sign(u.ID, PurposeAuthentication)
	if err != nil {
		return nil, err
	}
	return s.tokens.Create(u.ID, PurposeAuthentication, signed)
}

// RevokeToken deletes the persisted record. Revoking an already-revoked
// token succeeds.
func (s *Service) RevokeToken(t *model.Token) error {
	return s.tokens.Delete(t.ID)
}

// ResolveToken turns a presented token string into the user and token
// record it stands for. Signature, purpose, and a live store record must
// all check out; any failure collapses to ErrUnauthenticated.
func (s *Service) ResolveToken(signed string) (*model.User, *model.Token, error) {
	userID, purpose, err := s.signer.Verify(signed)
	if err != nil {
		return nil, nil, ErrUnauthenticated
	}
	if purpose != PurposeAuthentication {
		return nil, nil, ErrUnauthenticated
	}

	rec, err := s.tokens.GetByToken(signed)
	if err != nil || rec == nil || rec.UserID != userID {
		return nil, nil, ErrUnauthenticated
	}

	u, err := s.users.GetByID(userID)
	if err != nil || u == nil {
		return nil, nil, ErrUnauthenticated
	}
	return u, rec, nil
}

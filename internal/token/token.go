// Package token signs and verifies the opaque credential strings handed to
// clients. A token is an HMAC-signed claim set binding a user id to a
// purpose; whether it is still live is the token store's business, not
// this package's.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// signing method, malformed payload, missing claims. Callers get no finer
// detail.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	UserID  int64  `json:"user_id"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

type Signer struct {
	secret []byte
}

func NewSigner(secret []byte) *Signer {
	return &Signer{secret: secret}
}

// Sign produces a signed token for the given user and purpose. The jti
// claim makes every call produce a distinct string, so two logins by the
// same user persist as separate revocable records.
func (s *Signer) Sign(userID int64, purpose string) (string, error) {
	c := claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and returns the embedded user id and purpose.
func (s *Signer) Verify(signed string) (int64, string, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(signed, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, "", ErrInvalidToken
	}
	if c.UserID == 0 {
		return 0, "", ErrInvalidToken
	}
	return c.UserID, c.Purpose, nil
}

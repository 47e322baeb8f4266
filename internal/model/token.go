package model

import "time"

// Token is a persisted authentication credential. The Token field holds the
// full signed string handed to the client; deleting the row revokes it
// regardless of whether the signature still verifies.
type Token struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	Purpose   string    `json:"purpose"`
	CreatedAt time.Time `json:"created_at"`
}

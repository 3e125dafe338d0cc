package auth

import (
	"errors"
	"time"
)

var errBadCredentials = errors.New("invalid username or password")

// Account is the single admin login.
type Account struct {
	Username     string
	PasswordHash string
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type meResponse struct {
	Username string `json:"username"`
	TokenID  string `json:"token_id"`
}

package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/tripdesk/crm-admin/internal/pkg/jwt"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash keeps failed username checks as slow as password checks.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("crm-admin"), bcrypt.DefaultCost)

type Service struct {
	account Account
	ttl     time.Duration
	revoked *Revocations
	log     *zap.Logger
}

func NewService(account Account, ttl time.Duration, revoked *Revocations, log *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{account: account, ttl: ttl, revoked: revoked, log: log}
}

// TTL is the token lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// Login checks the credentials and issues a session token.
func (s *Service) Login(username, password string) (string, time.Time, error) {
	hash := []byte(s.account.PasswordHash)
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.account.Username)) == 1
	if !userOK || len(hash) == 0 {
		hash = dummyHash
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !userOK || s.account.PasswordHash == "" {
		s.log.Warn("login failed", zap.String("username", username))
		return "", time.Time{}, errBadCredentials
	}
	expires := time.Now().Add(s.ttl)
	token, err := jwt.Sign(s.account.Username, s.ttl)
	if err != nil {
		return "", time.Time{}, err
	}
	s.log.Info("admin signed in", zap.String("username", username))
	return token, expires, nil
}

// Logout revokes tokenID for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, tokenID string) error {
	return s.revoked.Revoke(ctx, tokenID, s.ttl)
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"

	"github.com/epalau/patrimonio/internal/config"
	"github.com/epalau/patrimonio/internal/domain"
)

var tracer = otel.Tracer("auth")

// AuthService authenticates against the static account table from the
// config file and keeps sessions in Redis. The Redis TTL is authoritative
// for expiry; the JWT only carries the session identity, so extending a
// session never requires reissuing the token.
type AuthService struct {
	rdb      *redis.Client
	accounts []config.Account
	secret   []byte
	ttl      time.Duration
	warning  time.Duration
}

func NewAuthService(rdb *redis.Client, conf config.Session, accounts []config.Account) *AuthService {
	return &AuthService{
		rdb:      rdb,
		accounts: accounts,
		secret:   []byte(conf.Secret),
		ttl:      time.Duration(conf.TTLMinutes) * time.Minute,
		warning:  time.Duration(conf.WarningMinutes) * time.Minute,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

// WarningWindow is how long before expiry the session reads as warning.
func (s *AuthService) WarningWindow() time.Duration {
	return s.warning
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.Session, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Login")
	defer span.End()

	var account *config.Account
	for i := range s.accounts {
		if s.accounts[i].Username == username {
			account = &s.accounts[i]
			break
		}
	}
	if account == nil {
		span.RecordError(fmt.Errorf("unknown account"))
		return "", domain.Session{}, domain.UnauthorizedError{Reason: "invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		span.RecordError(err)
		return "", domain.Session{}, domain.UnauthorizedError{Reason: "invalid credentials"}
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:          uuid.NewString(),
		Username:    account.Username,
		DisplayName: account.DisplayName,
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.ttl),
	}

	if err := s.store(ctx, session); err != nil {
		return "", domain.Session{}, errors.Wrap(err, "AuthService.Login: failed to store session")
	}

	token, err := SignToken(s.secret, session.ID, session.Username)
	if err != nil {
		return "", domain.Session{}, errors.Wrap(err, "AuthService.Login: failed to sign token")
	}
	return token, session, nil
}

// Resolve maps a bearer token to its live session.
func (s *AuthService) Resolve(ctx context.Context, token string) (domain.Session, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Resolve")
	defer span.End()

	sessionID, err := ParseToken(s.secret, token)
	if err != nil {
		span.RecordError(err)
		return domain.Session{}, domain.UnauthorizedError{Reason: "invalid token"}
	}

	raw, err := s.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return domain.Session{}, domain.UnauthorizedError{Reason: "session expired"}
	}
	if err != nil {
		return domain.Session{}, errors.Wrap(err, "AuthService.Resolve: session lookup failed")
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.Session{}, errors.Wrap(err, "AuthService.Resolve: corrupt session record")
	}

	if session.Phase(time.Now().UTC(), 0) == domain.SessionExpired {
		s.rdb.Del(ctx, sessionKey(sessionID))
		return domain.Session{}, domain.UnauthorizedError{Reason: "session expired"}
	}
	return session, nil
}

// Extend resets the session expiry to a full TTL from now.
func (s *AuthService) Extend(ctx context.Context, sessionID string) (domain.Session, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Extend")
	defer span.End()

	raw, err := s.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return domain.Session{}, domain.UnauthorizedError{Reason: "session expired"}
	}
	if err != nil {
		return domain.Session{}, errors.Wrap(err, "AuthService.Extend: session lookup failed")
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.Session{}, errors.Wrap(err, "AuthService.Extend: corrupt session record")
	}

	session.ExpiresAt = time.Now().UTC().Add(s.ttl)
	if err := s.store(ctx, session); err != nil {
		return domain.Session{}, errors.Wrap(err, "AuthService.Extend: failed to store session")
	}
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	ctx, span := tracer.Start(ctx, "Auth.Service.Logout")
	defer span.End()

	return s.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *AuthService) store(ctx context.Context, session domain.Session) error {
	value, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(session.ID), value, time.Until(session.ExpiresAt)).Err()
}

// SignToken issues the bearer token for a session. Expiry is deliberately
// not a claim: the Redis record owns it, so extension works in place.
func SignToken(secret []byte, sessionID, username string) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:       sessionID,
		Subject:  username,
		IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies the signature and returns the session id.
func ParseToken(secret []byte, tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return "", fmt.Errorf("missing session id claim")
	}
	return claims.ID, nil
}

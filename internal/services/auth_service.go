package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campbook/internal/cache"
	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/repositories"
	"campbook/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles login, token verification and password changes.
type AuthService struct {
	Users     UserStore
	Cache     cache.Store
	Secret    []byte
	TTL       time.Duration
	RequestID string
	Now       func() time.Time
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      models.User `json:"user"`
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) store() cache.Store {
	if s.Cache != nil {
		return s.Cache
	}
	return cache.NoopStore{}
}

func (s AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, domain.ValidationError{Field: "username", Msg: "username and password are required"}
	}

	bad := domain.UnauthorizedError{Msg: "invalid username or password"}
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.LogEvent(s.RequestID, "auth", "login", "unknown user "+username)
			return LoginResult{}, bad
		}
		return LoginResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		utils.LogEvent(s.RequestID, "auth", "login", "wrong password for "+username)
		return LoginResult{}, bad
	}
	if !u.IsActive() {
		return LoginResult{}, domain.UnauthorizedError{Msg: "account is disabled"}
	}

	token, exp, err := s.issue(u)
	if err != nil {
		return LoginResult{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}

	now := s.now()
	if err := s.Users.TouchLogin(ctx, u.ID, now); err != nil {
		utils.LogEvent(s.RequestID, "auth", "login", "touch last_login_at failed: "+err.Error())
	}
	u.LastLoginAt = &now

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d role=%s", u.ID, u.Role))
	return LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s AuthService) issue(u models.User) (string, time.Time, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := s.now()
	exp := now.Add(ttl)
	claims := Claims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	return signed, exp, err
}

// ParseToken verifies signature, expiry and revocation, then reloads the user so
// disabled accounts are rejected and the stored role wins over the claimed one.
func (s AuthService) ParseToken(ctx context.Context, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, domain.UnauthorizedError{Msg: "invalid or expired token", Err: err}
	}
	if claims.UserID <= 0 {
		return nil, domain.UnauthorizedError{Msg: "invalid token subject"}
	}
	revoked, err := cache.IsRevoked(ctx, s.store(), claims.ID)
	if err != nil {
		utils.LogEvent(s.RequestID, "auth", "parse_token", "revocation check failed: "+err.Error())
	}
	if revoked {
		return nil, domain.UnauthorizedError{Msg: "token has been revoked"}
	}

	// the account may have changed since the token was issued
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.UnauthorizedError{Msg: "account no longer exists"}
		}
		return nil, err
	}
	if !u.IsActive() {
		return nil, domain.UnauthorizedError{Msg: "account is disabled"}
	}
	claims.Role = u.Role
	return claims, nil
}

// Logout revokes the token id until its natural expiry. Without redis it does nothing.
func (s AuthService) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := cache.RevokeToken(ctx, s.store(), claims.ID, claims.ExpiresAt.Time); err != nil {
		return domain.InternalError{Msg: "failed to revoke token", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "logout", fmt.Sprintf("user_id=%d", claims.UserID))
	return nil
}

func (s AuthService) Me(ctx context.Context, userID int64) (models.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return u, notFound(err, "user")
	}
	return u, nil
}

func (s AuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return domain.ValidationError{Field: "newPassword", Msg: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return notFound(err, "user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.ValidationError{Field: "oldPassword", Msg: "is incorrect"}
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, userID, hash); err != nil {
		return notFound(err, "user")
	}
	utils.LogEvent(s.RequestID, "auth", "change_password", fmt.Sprintf("user_id=%d", userID))
	return nil
}

func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to hash password", Err: err}
	}
	return string(hash), nil
}

// Package auth handles account registration, login and token handling:
// credential validation, bcrypt password hashing, and issuing/verifying the
// signed bearer tokens presented on authenticated requests.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/K-s-c49/post-comment-web/apperror"
	"github.com/K-s-c49/post-comment-web/config"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	minPasswordLen = 6
)

// UserStore persists accounts. GetUserByUsername returns (nil, nil) when no
// account matches; CreateUser returns a ConflictError on a duplicate
// username.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// Service implements registration, login and token verification.
type Service struct {
	store UserStore
	cfg   config.AuthConfig
}

// NewService creates a Service backed by the given store.
func NewService(store UserStore, cfg config.AuthConfig) *Service {
	return &Service{store: store, cfg: cfg}
}

// Claims is the token payload: the account id in the registered Subject
// claim plus the username.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID parses the Subject claim as the account identifier.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Register validates the credentials, creates the account and signs a token
// for it.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperror.NewBadRequestError("username and password are required", nil)
	}
	if utf8.RuneCountInString(username) < minUsernameLen {
		return nil, apperror.NewBadRequestError("username must be at least 3 characters", nil)
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return nil, apperror.NewBadRequestError("username must be at most 30 characters", nil)
	}
	if len(req.Password) < minPasswordLen {
		return nil, apperror.NewBadRequestError("password must be at least 6 characters", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hashed),
	}

	// The store maps the unique-index violation to a ConflictError, so two
	// concurrent registrations of the same name cannot both succeed.
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

// Login authenticates the credentials and signs a token. An unknown username
// and a wrong password fail identically.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperror.NewBadRequestError("username and password are required", nil)
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

// signToken issues an HS256 token carrying the account id and username.
func (s *Service) signToken(user *User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a token string and returns its claims.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	return verifyToken(tokenString, s.cfg.JWTSecret)
}

func verifyToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	// A token without a usable subject cannot identify a requester.
	if _, err := claims.UserID(); err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}
	return claims, nil
}

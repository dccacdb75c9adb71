package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/K-s-c49/post-comment-web/apperror"
	"github.com/K-s-c49/post-comment-web/config"
)

// memUserStore is an in-memory UserStore with the same contract as the
// PostgreSQL store: conflict on duplicate username, (nil, nil) on absent.
type memUserStore struct {
	mu    sync.Mutex
	users map[string]*User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*User)}
}

func (m *memUserStore) CreateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Username]; exists {
		return apperror.NewConflictError("username already exists", nil)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.users[user.Username] = &stored
	return nil
}

func (m *memUserStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, exists := m.users[username]
	if !exists {
		return nil, nil
	}
	user := *stored
	return &user, nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", TokenDuration: time.Hour}
}

func TestRegisterValidatesInput(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantMsg string
	}{
		{"missing username", RegisterRequest{Password: "password1"}, "username and password are required"},
		{"missing password", RegisterRequest{Username: "alice"}, "username and password are required"},
		{"whitespace username", RegisterRequest{Username: "   ", Password: "password1"}, "username and password are required"},
		{"short username", RegisterRequest{Username: "ab", Password: "password1"}, "username must be at least 3 characters"},
		{"long username", RegisterRequest{Username: "a-very-long-username-over-thirty-chars", Password: "password1"}, "username must be at most 30 characters"},
		{"short password", RegisterRequest{Username: "alice", Password: "12345"}, "password must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMemUserStore(), testAuthConfig())
			_, err := svc.Register(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, apperror.IsBadRequest(err))
			appErr, ok := apperror.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestRegisterTrimsUsernameAndHashesPassword(t *testing.T) {
	store := newMemUserStore()
	svc := NewService(store, testAuthConfig())

	resp, err := svc.Register(context.Background(), RegisterRequest{Username: "  alice  ", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)

	stored, err := store.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "password1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password1")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newMemUserStore()
	svc := NewService(store, testAuthConfig())

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "different1"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	appErr, _ := apperror.FromError(err)
	assert.Equal(t, "username already exists", appErr.Message)
	assert.Len(t, store.users, 1)
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc := NewService(newMemUserStore(), testAuthConfig())

	resp, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "password1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := svc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.Subject)
	assert.Equal(t, "alice", claims.Username)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id)
}

func TestLogin(t *testing.T) {
	store := newMemUserStore()
	svc := NewService(store, testAuthConfig())
	_, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "password1"})
		require.NoError(t, err)
		claims, err := svc.VerifyToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID.String(), claims.Subject)
	})

	t.Run("wrong password and unknown user fail identically", func(t *testing.T) {
		_, errWrongPassword := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "nope-nope"})
		_, errUnknownUser := svc.Login(context.Background(), LoginRequest{Username: "nobody", Password: "password1"})

		require.Error(t, errWrongPassword)
		require.Error(t, errUnknownUser)
		assert.True(t, apperror.IsAuthError(errWrongPassword))
		assert.True(t, apperror.IsAuthError(errUnknownUser))

		wrongErr, _ := apperror.FromError(errWrongPassword)
		unknownErr, _ := apperror.FromError(errUnknownUser)
		assert.Equal(t, wrongErr.Message, unknownErr.Message)
		assert.Equal(t, "invalid credentials", wrongErr.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginRequest{Username: "alice"})
		assert.True(t, apperror.IsBadRequest(err))
	})
}

func TestVerifyTokenRejections(t *testing.T) {
	svc := NewService(newMemUserStore(), testAuthConfig())
	resp, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewService(newMemUserStore(), config.AuthConfig{JWTSecret: "other-secret", TokenDuration: time.Hour})
		_, err := other.VerifyToken(resp.Token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expiring := NewService(newMemUserStore(), config.AuthConfig{JWTSecret: "test-secret", TokenDuration: -time.Minute})
		expired, err := expiring.Register(context.Background(), RegisterRequest{Username: "bob", Password: "password1"})
		require.NoError(t, err)
		_, err = svc.VerifyToken(expired.Token)
		assert.Error(t, err)
	})
}

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qna/internal/domain/entity"
)

// stubUsers is an in-memory UserRepository.
type stubUsers struct {
	data      map[string]entity.User
	nextID    int64
	findErr   error
	createErr error
}

func newStubUsers(users ...entity.User) *stubUsers {
	s := &stubUsers{data: map[string]entity.User{}, nextID: 1}
	for _, u := range users {
		u.ID = s.nextID
		s.nextID++
		s.data[u.UserID] = u
	}
	return s
}

func (s *stubUsers) FindByUserID(_ context.Context, userID string) (*entity.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	u, ok := s.data[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	u.ID = s.nextID
	s.nextID++
	s.data[u.UserID] = *u
	return nil
}

var javajigi = entity.NewUser("javajigi", "javajigi", "password", "javajigi@slipp.net")

func TestAuthService_ValidateCredentials(t *testing.T) {
	svc := NewAuthService(newStubUsers(javajigi), nil)

	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{"valid", Credentials{UserID: "javajigi", Password: "password"}, false},
		{"wrong password", Credentials{UserID: "javajigi", Password: "nope"}, true},
		{"unknown user", Credentials{UserID: "ghost", Password: "password"}, true},
		{"empty user", Credentials{Password: "password"}, true},
		{"empty password", Credentials{UserID: "javajigi"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.ValidateCredentials(context.Background(), tt.creds)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.ErrorIs(t, err, entity.ErrUnauthorized)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "javajigi", user.UserID)
			assert.NotZero(t, user.ID)
		})
	}
}

func TestAuthService_ValidateCredentials_RepoError(t *testing.T) {
	users := newStubUsers(javajigi)
	users.findErr = errors.New("db down")
	svc := NewAuthService(users, nil)

	_, err := svc.ValidateCredentials(context.Background(), Credentials{UserID: "javajigi", Password: "password"})
	assert.ErrorIs(t, err, users.findErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ResolveUser(t *testing.T) {
	svc := NewAuthService(newStubUsers(javajigi), nil)

	u, err := svc.ResolveUser(context.Background(), "javajigi")
	require.NoError(t, err)
	assert.True(t, u.Equals(javajigi))

	_, err = svc.ResolveUser(context.Background(), "deleted-user")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_EnsureUsers(t *testing.T) {
	users := newStubUsers(javajigi)
	svc := NewAuthService(users, nil)
	sanjigi := entity.NewUser("sanjigi", "sanjigi", "password", "")

	n, err := svc.EnsureUsers(context.Background(), []entity.User{javajigi, sanjigi})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, users.data, "sanjigi")

	n, err = svc.EnsureUsers(context.Background(), []entity.User{javajigi, sanjigi})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAuthService_EnsureUsers_Errors(t *testing.T) {
	users := newStubUsers()
	users.createErr = entity.ErrAlreadyExists
	svc := NewAuthService(users, nil)

	n, err := svc.EnsureUsers(context.Background(), []entity.User{javajigi})
	assert.NoError(t, err, "concurrent creation is not an error")
	assert.Zero(t, n)

	users.createErr = errors.New("disk full")
	_, err = svc.EnsureUsers(context.Background(), []entity.User{javajigi})
	assert.ErrorContains(t, err, "disk full")
}

func TestAuthService_IsPublicEndpoint(t *testing.T) {
	svc := NewAuthService(nil, []string{"/health", "/metrics", "/docs/"})

	tests := []struct {
		path     string
		expected bool
	}{
		{"/health", true},
		{"/health/", true},
		{"/health/detail", false},
		{"/healthcheck", false},
		{"/docs/index.html", true},
		{"/metrics", true},
		{"/questions", false},
		{"/", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.IsPublicEndpoint(tt.path))
		})
	}
}

package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobboard/jobboard/internal/authz"
	"github.com/jobboard/jobboard/internal/shared"
)

type mockRepository struct {
	users map[int64]*User
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[int64]*User)}
}

func (m *mockRepository) GetUser(ctx context.Context, id int64) (*User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (m *mockRepository) UpdateProfile(ctx context.Context, id int64, username, email string) (*User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	user.Username = username
	user.Email = email
	return user, nil
}

func (m *mockRepository) ListUsers(ctx context.Context) ([]User, error) {
	result := make([]User, 0, len(m.users))
	for _, user := range m.users {
		result = append(result, *user)
	}
	return result, nil
}

func TestCurrentRequiresAuthentication(t *testing.T) {
	service := NewService(newMockRepository())
	_, err := service.Current(context.Background(), authz.Anonymous())
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestUpdateCurrentKeepsRole(t *testing.T) {
	repo := newMockRepository()
	repo.users[1] = &User{ID: 1, Username: "old", Role: authz.RoleRecruiter}
	service := NewService(repo)
	actor := authz.Actor{ID: 1, Role: authz.RoleRecruiter, Authenticated: true}

	user, err := service.UpdateCurrent(context.Background(), actor, ProfileUpdate{Username: "new", Email: "n@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new", user.Username)
	assert.Equal(t, authz.RoleRecruiter, user.Role)

	_, err = service.UpdateCurrent(context.Background(), actor, ProfileUpdate{Username: "   "})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestListAdminOnly(t *testing.T) {
	repo := newMockRepository()
	repo.users[1] = &User{ID: 1, Username: "a"}
	repo.users[2] = &User{ID: 2, Username: "b"}
	service := NewService(repo)

	result, err := service.List(context.Background(), authz.Actor{ID: 9, Role: authz.RoleAdmin, Authenticated: true})
	require.NoError(t, err)
	assert.Len(t, result, 2)

	_, err = service.List(context.Background(), authz.Actor{ID: 1, Role: authz.RoleRecruiter, Authenticated: true})
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)

	_, err = service.List(context.Background(), authz.Anonymous())
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

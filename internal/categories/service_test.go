package categories

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobboard/jobboard/internal/authz"
	"github.com/jobboard/jobboard/internal/shared"
)

type mockRepository struct {
	categories map[int64]*Category
	nextID     int64
	referenced map[int64]bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		categories: make(map[int64]*Category),
		nextID:     1,
		referenced: make(map[int64]bool),
	}
}

func (m *mockRepository) List(ctx context.Context) ([]Category, error) {
	result := make([]Category, 0, len(m.categories))
	for _, c := range m.categories {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (m *mockRepository) Create(ctx context.Context, category Category) (*Category, error) {
	for _, existing := range m.categories {
		if existing.Name == category.Name || existing.Slug == category.Slug {
			return nil, fmt.Errorf("%w: category name or slug already exists", shared.ErrConflict)
		}
	}
	category.ID = m.nextID
	m.nextID++
	m.categories[category.ID] = &category
	return &category, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, category Category) (*Category, error) {
	if _, ok := m.categories[id]; !ok {
		return nil, shared.ErrNotFound
	}
	category.ID = id
	m.categories[id] = &category
	return &category, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.categories[id]; !ok {
		return shared.ErrNotFound
	}
	if m.referenced[id] {
		return fmt.Errorf("%w: category still has job listings", shared.ErrConflict)
	}
	delete(m.categories, id)
	return nil
}

var (
	adminActor     = authz.Actor{ID: 1, Role: authz.RoleAdmin, Authenticated: true}
	recruiterActor = authz.Actor{ID: 2, Role: authz.RoleRecruiter, Authenticated: true}
	userActor      = authz.Actor{ID: 3, Role: authz.RoleUser, Authenticated: true}
)

func TestCreateAdminOnly(t *testing.T) {
	service := NewService(newMockRepository())
	ctx := context.Background()

	created, err := service.Create(ctx, adminActor, Input{Name: "Engineering"})
	require.NoError(t, err)
	assert.Equal(t, "engineering", created.Slug)

	for _, actor := range []authz.Actor{recruiterActor, userActor, authz.Anonymous()} {
		_, err := service.Create(ctx, actor, Input{Name: "Sales"})
		assert.ErrorIs(t, err, shared.ErrPermissionDenied, "role %s", actor.Role)
	}
}

func TestCreateValidation(t *testing.T) {
	service := NewService(newMockRepository())
	ctx := context.Background()

	_, err := service.Create(ctx, adminActor, Input{Name: "   "})
	assert.ErrorIs(t, err, shared.ErrValidation)

	_, err = service.Create(ctx, adminActor, Input{Name: "!!!"})
	assert.ErrorIs(t, err, shared.ErrValidation, "name with no slug-able characters")
}

func TestCreateDuplicateConflict(t *testing.T) {
	service := NewService(newMockRepository())
	ctx := context.Background()

	_, err := service.Create(ctx, adminActor, Input{Name: "Design"})
	require.NoError(t, err)
	_, err = service.Create(ctx, adminActor, Input{Name: "Design"})
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestReadOpenToAnyone(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, adminActor, Input{Name: "Support"})
	require.NoError(t, err)

	// No actor parameter at all: reads are policy-free.
	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Support", got.Name)

	all, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeleteRestrictedWhileReferenced(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, adminActor, Input{Name: "Ops"})
	require.NoError(t, err)
	repo.referenced[created.ID] = true

	// Restriction holds for admins too.
	err = service.Delete(ctx, adminActor, created.ID)
	assert.ErrorIs(t, err, shared.ErrConflict)

	repo.referenced[created.ID] = false
	require.NoError(t, service.Delete(ctx, adminActor, created.ID))
	_, err = service.Get(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteAdminOnly(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, adminActor, Input{Name: "Legal"})
	require.NoError(t, err)

	err = service.Delete(ctx, recruiterActor, created.ID)
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)
}

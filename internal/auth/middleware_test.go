package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobboard/jobboard/internal/auth"
	"github.com/jobboard/jobboard/internal/authz"
	"github.com/jobboard/jobboard/internal/shared"
)

func TestAuthenticateMiddleware(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tokens := auth.NewTokenStore(client, time.Hour)
	repo := newStubRepo()
	service := auth.NewService(repo, tokens, bcrypt.MinCost)

	_, token, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "rex", Password: "longenough", Role: "RECRUITER",
	})
	require.NoError(t, err)

	var seen authz.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := auth.Middleware{Service: service}.Authenticate(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, seen.Authenticated)
	assert.Equal(t, authz.RoleRecruiter, seen.Role)

	// No header: anonymous, request still served.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, seen.Authenticated)

	// Garbage token: anonymous, not an error response.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, seen.Authenticated)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, auth.BearerToken(req))

	req.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", auth.BearerToken(req))

	req.Header.Set("Authorization", "bearer abc123")
	assert.Equal(t, "abc123", auth.BearerToken(req), "scheme is case-insensitive")

	req.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, auth.BearerToken(req))
}

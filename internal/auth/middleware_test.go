package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

type middlewareFixture struct {
	app     *fiber.App
	tokens  *auth.TokenManager
	revoker *auth.TokenRevoker
	users   *repository.InMemoryUserRepository
	user    *domain.User
}

func newMiddlewareFixture(t *testing.T) *middlewareFixture {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	f := &middlewareFixture{
		tokens:  auth.NewTokenManager("test-secret", 30),
		revoker: auth.NewTokenRevoker(redis.NewClient(&redis.Options{Addr: mr.Addr()})),
		users:   repository.NewInMemoryUserRepository(),
	}

	f.user = &domain.User{Name: "alice", Role: domain.RoleEmployee}
	require.NoError(t, f.users.Create(context.Background(), f.user))

	f.app = fiber.New()
	httptransport.RegisterMiddlewares(f.app, zap.NewNop(), observability.NewMetrics(), time.Second)

	mw := auth.NewAuthMiddleware(f.tokens, f.revoker, f.users)
	f.app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"user_id": principal.Identity.UserID})
	})
	f.app.Get("/support-only", mw.Handle, auth.RequireRole(domain.RoleITSupport), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return f
}

func (f *middlewareFixture) request(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	f := newMiddlewareFixture(t)

	token, _, err := f.tokens.GenerateToken(f.user.ID, f.user.Role)
	require.NoError(t, err)

	resp := f.request(t, "/protected", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	f := newMiddlewareFixture(t)

	resp := f.request(t, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	f := newMiddlewareFixture(t)

	resp := f.request(t, "/protected", "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	f := newMiddlewareFixture(t)

	token, exp, err := f.tokens.GenerateToken(f.user.ID, f.user.Role)
	require.NoError(t, err)
	claims, err := f.tokens.ParseToken(token)
	require.NoError(t, err)
	require.NoError(t, f.revoker.Revoke(context.Background(), claims.ID, exp))

	resp := f.request(t, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsUnknownUser(t *testing.T) {
	f := newMiddlewareFixture(t)

	token, _, err := f.tokens.GenerateToken("ghost", domain.RoleEmployee)
	require.NoError(t, err)

	resp := f.request(t, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleBlocksWrongRole(t *testing.T) {
	f := newMiddlewareFixture(t)

	token, _, err := f.tokens.GenerateToken(f.user.ID, f.user.Role)
	require.NoError(t, err)

	resp := f.request(t, "/support-only", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

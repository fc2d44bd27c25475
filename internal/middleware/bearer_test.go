package middleware_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinehall/backend/internal/auth"
	"github.com/cinehall/backend/internal/middleware"
	"github.com/cinehall/backend/internal/store"
)

type stubTokens struct {
	claims *auth.Claims
	err    error
}

func (s stubTokens) Issue(auth.Identity) (string, error) { return "", nil }

func (s stubTokens) Verify(string) (*auth.Claims, error) {
	return s.claims, s.err
}

type stubFinder struct {
	user *store.User
	err  error
}

func (s stubFinder) FindByEmail(context.Context, string) (*store.User, error) {
	return s.user, s.err
}

// probeApp wires the filter in front of a handler that reports what
// the request context contains.
func probeApp(cfg middleware.Config) *fiber.App {
	app := fiber.New()
	app.Use(middleware.BearerAuth(cfg))
	app.Get("/probe", func(c *fiber.Ctx) error {
		identity, ok := middleware.CurrentIdentity(c)
		if !ok {
			return c.JSON(fiber.Map{"authenticated": false})
		}
		return c.JSON(fiber.Map{
			"authenticated": true,
			"email":         identity.Email(),
			"role":          identity.Role(),
		})
	})
	app.Get("/api/auth/probe", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"exempt": true})
	})
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestBearerAuth(t *testing.T) {
	claims := &auth.Claims{UserID: 1, UserRole: auth.RoleAdmin}
	user := &store.User{ID: 1, Email: "alice@example.com", Role: auth.RoleAdmin}

	t.Run("exempt prefixes bypass the filter entirely", func(t *testing.T) {
		app := probeApp(middleware.Config{
			Tokens:         stubTokens{err: auth.ErrTokenMalformed},
			Users:          stubFinder{},
			ExemptPrefixes: []string{"/api/auth/"},
		})

		req := httptest.NewRequest(http.MethodGet, "/api/auth/probe", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer whatever")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, decode(t, resp)["exempt"])
	})

	t.Run("a sibling of an exempt prefix stays filtered", func(t *testing.T) {
		app := fiber.New()
		app.Use(middleware.BearerAuth(middleware.Config{
			Tokens:         stubTokens{err: auth.ErrTokenMalformed},
			Users:          stubFinder{},
			ExemptPrefixes: []string{"/login/"},
		}))
		app.Get("/login/oauth2/code/google", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"exempt": true})
		})
		app.Get("/login-page", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"exempt": true})
		})

		exempt := httptest.NewRequest(http.MethodGet, "/login/oauth2/code/google", nil)
		exempt.Header.Set(fiber.HeaderAuthorization, "Bearer bad-token")
		resp, err := app.Test(exempt)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		sibling := httptest.NewRequest(http.MethodGet, "/login-page", nil)
		sibling.Header.Set(fiber.HeaderAuthorization, "Bearer bad-token")
		resp, err = app.Test(sibling)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("no header forwards unauthenticated", func(t *testing.T) {
		app := probeApp(middleware.Config{
			Tokens: stubTokens{err: auth.ErrTokenMalformed},
			Users:  stubFinder{},
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/probe", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, false, decode(t, resp)["authenticated"])
	})

	t.Run("non bearer scheme forwards unauthenticated", func(t *testing.T) {
		app := probeApp(middleware.Config{
			Tokens: stubTokens{err: auth.ErrTokenMalformed},
			Users:  stubFinder{},
		})

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Basic YWxpY2U6cw==")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, false, decode(t, resp)["authenticated"])
	})

	t.Run("invalid token short circuits with 401", func(t *testing.T) {
		for _, verifyErr := range []error{
			auth.ErrTokenMalformed,
			auth.ErrInvalidSignature,
			auth.ErrTokenExpired,
		} {
			app := probeApp(middleware.Config{
				Tokens: stubTokens{err: verifyErr},
				Users:  stubFinder{user: user},
			})

			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			req.Header.Set(fiber.HeaderAuthorization, "Bearer bad-token")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Invalid or expired token", decode(t, resp)["error"])
		}
	})

	t.Run("valid token binds the identity", func(t *testing.T) {
		app := probeApp(middleware.Config{
			Tokens: stubTokens{claims: claims},
			Users:  stubFinder{user: user},
		})

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer good-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode(t, resp)
		assert.Equal(t, true, body["authenticated"])
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, auth.RoleAdmin, body["role"])
	})

	t.Run("unknown subject degrades to unauthenticated", func(t *testing.T) {
		app := probeApp(middleware.Config{
			Tokens: stubTokens{claims: claims},
			Users:  stubFinder{err: sql.ErrNoRows},
		})

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer good-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, false, decode(t, resp)["authenticated"])
	})

	t.Run("store failure is a server error", func(t *testing.T) {
		app := probeApp(middleware.Config{
			Tokens: stubTokens{claims: claims},
			Users:  stubFinder{err: errors.New("connection refused", errors.CategoryInternal)},
		})

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer good-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("concurrent requests do not share identities", func(t *testing.T) {
		app := probeApp(middleware.Config{
			Tokens: stubTokens{claims: claims},
			Users:  stubFinder{user: user},
		})

		authed := httptest.NewRequest(http.MethodGet, "/probe", nil)
		authed.Header.Set(fiber.HeaderAuthorization, "Bearer good-token")
		anon := httptest.NewRequest(http.MethodGet, "/probe", nil)

		respA, err := app.Test(authed)
		require.NoError(t, err)
		respB, err := app.Test(anon)
		require.NoError(t, err)

		assert.Equal(t, true, decode(t, respA)["authenticated"])
		assert.Equal(t, false, decode(t, respB)["authenticated"])
	})
}

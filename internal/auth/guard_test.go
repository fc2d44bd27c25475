package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinehall/backend/internal/auth"
)

func TestRequireRole(t *testing.T) {
	bob := fixtureIdentity{
		id:    2,
		email: "bob@example.com",
		name:  "Bob",
		role:  auth.RoleCustomer,
	}

	t.Run("denies an empty context", func(t *testing.T) {
		identity, err := auth.RequireRole(context.Background(), auth.RoleAdmin)
		assert.Nil(t, identity)
		assert.Equal(t, auth.ErrUnauthenticated, err)
	})

	t.Run("denies a mismatched role", func(t *testing.T) {
		ctx := auth.WithIdentity(context.Background(), bob)

		identity, err := auth.RequireRole(ctx, auth.RoleAdmin)
		assert.Nil(t, identity)
		assert.Equal(t, auth.ErrRoleDenied, err)
	})

	t.Run("admits a matching role", func(t *testing.T) {
		ctx := auth.WithIdentity(context.Background(), aliceAdmin)

		identity, err := auth.RequireRole(ctx, auth.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", identity.Email())
	})

	t.Run("roles do not subsume each other", func(t *testing.T) {
		ctx := auth.WithIdentity(context.Background(), aliceAdmin)

		identity, err := auth.RequireRole(ctx, auth.RoleCustomer)
		assert.Nil(t, identity)
		assert.Equal(t, auth.ErrRoleDenied, err)
	})
}

func TestRequireAuthenticated(t *testing.T) {
	t.Run("denies an empty context", func(t *testing.T) {
		identity, err := auth.RequireAuthenticated(context.Background())
		assert.Nil(t, identity)
		assert.Equal(t, auth.ErrUnauthenticated, err)
	})

	t.Run("admits any bound identity", func(t *testing.T) {
		ctx := auth.WithIdentity(context.Background(), aliceAdmin)

		identity, err := auth.RequireAuthenticated(ctx)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, identity.Role())
	})
}

func TestContextBindings(t *testing.T) {
	t.Run("identity round trips", func(t *testing.T) {
		ctx := auth.WithIdentity(context.Background(), aliceAdmin)

		identity, ok := auth.IdentityFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, int64(1), identity.ID())
	})

	t.Run("claims round trip", func(t *testing.T) {
		claims := &auth.Claims{UserID: 7, UserRole: auth.RoleCustomer}
		ctx := auth.WithClaims(context.Background(), claims)

		got, ok := auth.ClaimsFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, int64(7), got.UserID)
	})

	t.Run("absent values report false", func(t *testing.T) {
		_, ok := auth.IdentityFromContext(context.Background())
		assert.False(t, ok)

		_, ok = auth.ClaimsFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("bindings are isolated per context", func(t *testing.T) {
		base := context.Background()
		a := auth.WithIdentity(base, aliceAdmin)

		_, ok := auth.IdentityFromContext(base)
		assert.False(t, ok)

		got, ok := auth.IdentityFromContext(a)
		require.True(t, ok)
		assert.Equal(t, "alice@example.com", got.Email())
	})
}

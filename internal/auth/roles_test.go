package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinehall/backend/internal/auth"
)

func TestRoles(t *testing.T) {
	assert.True(t, auth.IsValidRole(auth.RoleAdmin))
	assert.True(t, auth.IsValidRole(auth.RoleCustomer))
	assert.False(t, auth.IsValidRole("SUPERUSER"))
	assert.False(t, auth.IsValidRole(""))

	role, ok := auth.ParseRole("ADMIN")
	assert.True(t, ok)
	assert.Equal(t, auth.RoleAdmin, role)

	_, ok = auth.ParseRole("admin")
	assert.False(t, ok)
}

func TestProviders(t *testing.T) {
	assert.True(t, auth.IsValidProvider(auth.ProviderLocal))
	assert.True(t, auth.IsValidProvider(auth.ProviderGoogle))
	assert.False(t, auth.IsValidProvider("GITHUB"))
}

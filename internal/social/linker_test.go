package social_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinehall/backend/internal/auth"
	"github.com/cinehall/backend/internal/social"
	"github.com/cinehall/backend/internal/store"
)

type stubAccounts struct {
	existing *store.User
	err      error

	gotRecord *store.User
}

func (s *stubAccounts) GetOrCreateByEmail(_ context.Context, record *store.User) (*store.User, bool, error) {
	s.gotRecord = record
	if s.err != nil {
		return nil, false, s.err
	}
	if s.existing != nil {
		return s.existing, false, nil
	}
	created := *record
	created.ID = 42
	return &created, true, nil
}

type stubTokens struct {
	issued auth.Identity
}

func (s *stubTokens) Issue(identity auth.Identity) (string, error) {
	s.issued = identity
	return "issued-token", nil
}

func (s *stubTokens) Verify(string) (*auth.Claims, error) { return nil, nil }

func TestLinker_Link(t *testing.T) {
	ctx := context.Background()

	profile := &social.Profile{
		Subject: "google-sub-1",
		Email:   "carol@example.com",
		Name:    "Carol",
	}

	t.Run("missing email is fatal", func(t *testing.T) {
		linker := social.NewLinker(&stubAccounts{}, &stubTokens{}, nil)

		for _, p := range []*social.Profile{nil, {Subject: "x", Name: "No Email"}} {
			result, err := linker.Link(ctx, auth.ProviderGoogle, p)
			assert.Nil(t, result)
			assert.Equal(t, social.ErrMissingEmail, err)
		}
	})

	t.Run("first login creates a customer account", func(t *testing.T) {
		accounts := &stubAccounts{}
		tokens := &stubTokens{}
		linker := social.NewLinker(accounts, tokens, nil)

		result, err := linker.Link(ctx, auth.ProviderGoogle, profile)
		require.NoError(t, err)

		assert.True(t, result.IsNewUser)
		assert.Equal(t, "issued-token", result.Token)
		assert.Equal(t, int64(42), result.User.ID)

		require.NotNil(t, accounts.gotRecord)
		assert.Equal(t, "carol@example.com", accounts.gotRecord.Email)
		assert.Equal(t, auth.RoleCustomer, accounts.gotRecord.Role)
		assert.Equal(t, auth.ProviderGoogle, accounts.gotRecord.Provider)
		assert.Empty(t, accounts.gotRecord.PasswordHash)
	})

	t.Run("existing account is reused role intact", func(t *testing.T) {
		accounts := &stubAccounts{existing: &store.User{
			ID:       7,
			Email:    "carol@example.com",
			Name:     "Carol",
			Role:     auth.RoleAdmin,
			Provider: auth.ProviderLocal,
		}}
		tokens := &stubTokens{}
		linker := social.NewLinker(accounts, tokens, nil)

		result, err := linker.Link(ctx, auth.ProviderGoogle, profile)
		require.NoError(t, err)

		assert.False(t, result.IsNewUser)
		assert.Equal(t, auth.RoleAdmin, result.User.Role)
		// the token carries the stored role, not a default
		assert.Equal(t, auth.RoleAdmin, tokens.issued.Role())
	})

	t.Run("store errors propagate", func(t *testing.T) {
		accounts := &stubAccounts{err: context.DeadlineExceeded}
		linker := social.NewLinker(accounts, &stubTokens{}, nil)

		result, err := linker.Link(ctx, auth.ProviderGoogle, profile)
		assert.Nil(t, result)
		assert.Equal(t, context.DeadlineExceeded, err)
	})
}

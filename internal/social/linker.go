package social

import (
	"context"

	"github.com/cinehall/backend/internal/auth"
	"github.com/cinehall/backend/internal/store"
)

// Accounts is the store capability the linker needs.
type Accounts interface {
	GetOrCreateByEmail(ctx context.Context, record *store.User) (*store.User, bool, error)
}

// LinkResult carries the resolved account and a token for it.
type LinkResult struct {
	User      *store.User
	Token     string
	IsNewUser bool
}

// Linker reconciles externally-authenticated identities with local
// accounts. An email already in the store is reused verbatim, role
// included; a federated login never escalates or demotes. A new
// email becomes a CUSTOMER account with no password hash.
type Linker struct {
	accounts Accounts
	tokens   auth.TokenService
	logger   auth.Logger
}

// NewLinker creates a Linker.
func NewLinker(accounts Accounts, tokens auth.TokenService, logger auth.Logger) *Linker {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Linker{
		accounts: accounts,
		tokens:   tokens,
		logger:   logger,
	}
}

// Link resolves the profile to a local account and issues a token for
// it. A profile without an email is fatal for this attempt.
func (l *Linker) Link(ctx context.Context, provider auth.Provider, profile *Profile) (*LinkResult, error) {
	if profile == nil || profile.Email == "" {
		return nil, ErrMissingEmail
	}

	record := &store.User{
		Email:    profile.Email,
		Name:     profile.Name,
		Role:     auth.RoleCustomer,
		Provider: provider,
	}

	user, created, err := l.accounts.GetOrCreateByEmail(ctx, record)
	if err != nil {
		return nil, err
	}

	if created {
		l.logger.Info("created federated account for %s via %s", user.Email, provider)
	}

	token, err := l.tokens.Issue(user.Identity())
	if err != nil {
		return nil, err
	}

	return &LinkResult{
		User:      user,
		Token:     token,
		IsNewUser: created,
	}, nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

package auth

import "context"

// RequireRole is the single authorization predicate every protected
// operation consults. It denies with ErrUnauthenticated when no
// identity was resolved for the request and with ErrRoleDenied when
// the resolved role does not match the required one.
func RequireRole(ctx context.Context, required Role) (Identity, error) {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if identity.Role() != required {
		return nil, ErrRoleDenied
	}

	return identity, nil
}

// RequireAuthenticated resolves the identity without a role check.
func RequireAuthenticated(ctx context.Context) (Identity, error) {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return identity, nil
}

package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cinehall/backend/internal/auth"
	"github.com/cinehall/backend/internal/store"
)

const bearerScheme = "Bearer "

// UserFinder is the single store capability the filter needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*store.User, error)
}

// Config configures the bearer-token filter.
type Config struct {
	Tokens auth.TokenService
	Users  UserFinder
	// ExemptPrefixes skip the filter entirely (auth endpoints and the
	// federated callback arrive unauthenticated by design).
	ExemptPrefixes []string
	Logger         auth.Logger
}

// BearerAuth runs once per request before any domain handler. A
// missing or non-bearer header forwards the request with an empty
// security context; a present but invalid token short-circuits with
// 401; a verified token resolves the subject through the user store
// and binds the identity to the request context. Handlers decide for
// themselves whether an empty context is acceptable.
func BearerAuth(cfg Config) fiber.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	return func(c *fiber.Ctx) error {
		for _, prefix := range cfg.ExemptPrefixes {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}

		// one context write per request: a populated context wins
		if _, ok := auth.IdentityFromContext(c.UserContext()); ok {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerScheme) {
			return c.Next()
		}

		raw := strings.TrimSpace(header[len(bearerScheme):])
		claims, err := cfg.Tokens.Verify(raw)
		if err != nil {
			logger.Debug("bearer token rejected: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		user, err := cfg.Users.FindByEmail(c.UserContext(), claims.Subject())
		if err != nil {
			if store.IsNotFound(err) {
				// verified token, unknown subject: degrade to an
				// empty context and let the role gate reject later
				logger.Debug("%s: %s", auth.ErrUnknownSubject.Message, claims.Subject())
				return c.Next()
			}
			logger.Error("identity lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to resolve identity",
			})
		}

		ctx := auth.WithClaims(c.UserContext(), claims)
		ctx = auth.WithIdentity(ctx, user.Identity())
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// CurrentIdentity reads the identity the filter bound to the request,
// if any.
func CurrentIdentity(c *fiber.Ctx) (auth.Identity, bool) {
	return auth.IdentityFromContext(c.UserContext())
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

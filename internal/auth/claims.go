package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity holds the attributes of an authenticated principal
type Identity interface {
	ID() int64
	Email() string
	Name() string
	Role() Role
}

// Claims is the fixed claim set carried by every issued token. The
// user identifier is a typed int64 so decoding never narrows large
// values the way a generic claim map would.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"userId"`
	UserRole Role   `json:"role,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Subject returns the subject claim, the account email
func (c *Claims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Email is an alias for Subject
func (c *Claims) Email() string {
	return c.RegisteredClaims.Subject
}

// Role returns the global role embedded in the token
func (c *Claims) Role() Role {
	return c.UserRole
}

// HasRole checks if the token carries a specific role
func (c *Claims) HasRole(role Role) bool {
	return c.UserRole == role
}

// Expires returns the expiration time
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *Claims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

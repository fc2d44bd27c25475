package auth

import "github.com/goliatone/go-errors"

const (
	TextCodeTokenMalformed   = "auth_token_malformed"
	TextCodeTokenSignature   = "auth_token_bad_signature"
	TextCodeTokenExpired     = "auth_token_expired"
	TextCodeUnknownSubject   = "auth_unknown_subject"
	TextCodeUnauthenticated  = "auth_unauthenticated"
	TextCodeRoleDenied       = "auth_role_denied"
	TextCodeEmailTaken       = "auth_email_taken"
	TextCodeBadCredentials   = "auth_bad_credentials"
	TextCodeEmptyPassword    = "auth_empty_password"
	TextCodePasswordMismatch = "auth_password_mismatch"
)

// ErrTokenMalformed is returned when a token cannot be parsed at all.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidSignature is returned when a token was tampered with or
// signed with a different key.
var ErrInvalidSignature = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenSignature).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when the embedded expiry has passed.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrUnknownSubject is returned when a verified token names an email
// with no matching account.
var ErrUnknownSubject = errors.New("token subject has no matching account", errors.CategoryAuth).
	WithTextCode(TextCodeUnknownSubject).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthenticated is returned by the role gate when no identity was
// resolved for the request.
var ErrUnauthenticated = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrRoleDenied is returned by the role gate when the resolved identity
// does not hold the required role.
var ErrRoleDenied = errors.New("insufficient role for this operation", errors.CategoryAuthz).
	WithTextCode(TextCodeRoleDenied).
	WithCode(errors.CodeForbidden)

// ErrEmailTaken is returned when registration hits an existing email.
var ErrEmailTaken = errors.New("Email already exists", errors.CategoryValidation).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeConflict)

// ErrInvalidCredentials is the uniform login failure. It deliberately
// does not distinguish unknown email from wrong password.
var ErrInvalidCredentials = errors.New("Invalid email or password", errors.CategoryAuth).
	WithTextCode(TextCodeBadCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString is returned when hashing an empty password.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is returned when a password does not
// match its stored hash.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithTextCode(TextCodePasswordMismatch).
	WithCode(errors.CodeUnauthorized)

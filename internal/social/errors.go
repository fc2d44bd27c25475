package social

import "github.com/goliatone/go-errors"

const (
	TextCodeInvalidState      = "social_invalid_state"
	TextCodeTokenExchangeFail = "social_token_exchange_failed"
	TextCodeUserInfoFail      = "social_user_info_failed"
	TextCodeMissingEmail      = "social_missing_email"
)

// ErrInvalidState is returned when the OAuth state is missing or does
// not match the nonce pinned at the start of the flow.
var ErrInvalidState = errors.New("invalid oauth state", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidState).
	WithCode(errors.CodeBadRequest)

// ErrTokenExchangeFailed is returned when the provider token exchange fails.
var ErrTokenExchangeFailed = errors.New("token exchange failed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExchangeFail).
	WithCode(errors.CodeUnauthorized)

// ErrUserInfoFailed is returned when fetching the provider profile fails.
var ErrUserInfoFailed = errors.New("failed to fetch user info", errors.CategoryAuth).
	WithTextCode(TextCodeUserInfoFail).
	WithCode(errors.CodeUnauthorized)

// ErrMissingEmail is fatal for a login attempt: without the provider
// email there is no federation key to link an account to.
var ErrMissingEmail = errors.New("provider profile carries no email", errors.CategoryAuth).
	WithTextCode(TextCodeMissingEmail).
	WithCode(errors.CodeUnauthorized)

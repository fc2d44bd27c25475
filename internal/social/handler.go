package social

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/cinehall/backend/internal/auth"
)

const (
	stateCookieName = "oauth_state"
	stateTTL        = 10 * time.Minute
)

// HTTPConfig configures the federated-login endpoints.
type HTTPConfig struct {
	// SuccessRedirect is the fixed front-end callback that receives
	// the issued token as a query parameter.
	SuccessRedirect string
}

// Handler exposes the begin/callback endpoints of the OAuth2 flow.
// Both are exempt from the bearer-token filter: they arrive
// unauthenticated by definition.
type Handler struct {
	provider Provider
	linker   *Linker
	config   HTTPConfig
}

// NewHandler creates a Handler.
func NewHandler(provider Provider, linker *Linker, cfg HTTPConfig) *Handler {
	return &Handler{
		provider: provider,
		linker:   linker,
		config:   cfg,
	}
}

// Register mounts the provider routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/oauth2/authorization/"+h.provider.Name(), h.Begin)
	app.Get("/login/oauth2/code/"+h.provider.Name(), h.Callback)
}

// Begin starts the flow: a random nonce goes both into the state
// parameter and a short-lived cookie, then the caller is sent to the
// provider's consent screen.
func (h *Handler) Begin(c *fiber.Ctx) error {
	state := uuid.NewString()

	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Expires:  time.Now().Add(stateTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect(h.provider.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// Callback finishes the flow: verify state, exchange the code, fetch
// the profile, link it to a local account, and hand the caller back
// to the front-end with the issued token attached.
func (h *Handler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")

	if code == "" || state == "" || state != c.Cookies(stateCookieName) {
		return ErrInvalidState
	}

	// the nonce is single use
	c.Cookie(&fiber.Cookie{
		Name:    stateCookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
	})

	token, err := h.provider.Exchange(c.UserContext(), code)
	if err != nil {
		return err
	}

	profile, err := h.provider.FetchProfile(c.UserContext(), token)
	if err != nil {
		return err
	}

	result, err := h.linker.Link(c.UserContext(), providerOrigin(h.provider.Name()), profile)
	if err != nil {
		return err
	}

	return c.Redirect(appendQueryParam(h.config.SuccessRedirect, "token", result.Token), fiber.StatusFound)
}

// providerOrigin maps a provider name onto the stored origin enum.
func providerOrigin(name string) auth.Provider {
	return auth.Provider(strings.ToUpper(name))
}

func appendQueryParam(rawURL, key, value string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

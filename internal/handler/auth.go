package handler

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/cinehall/backend/internal/auth"
	"github.com/cinehall/backend/internal/store"
)

// Auth serves registration and login for local accounts. These routes
// sit on an exempt prefix, they never see the bearer-token filter.
type Auth struct {
	users  *store.Users
	tokens auth.TokenService
	logger auth.Logger
}

// NewAuth creates the auth handler.
func NewAuth(users *store.Users, tokens auth.TokenService, logger auth.Logger) *Auth {
	return &Auth{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register mounts the auth routes.
func (h *Auth) Register(app *fiber.App) {
	grp := app.Group("/api/auth")
	grp.Post("/register", h.RegisterUser)
	grp.Post("/login", h.Login)
	grp.Post("/admin/register", h.AdminRegister)
	grp.Post("/admin/login", h.AdminLogin)
	grp.Get("/me", h.Me)

	// sits behind the filter, unlike the exempt /api/auth group
	app.Get("/api/profile", h.Profile)
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the signup payload.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// RegisterUser creates a CUSTOMER account with a hashed credential and
// answers with a fresh token.
func (h *Auth) RegisterUser(c *fiber.Ctx) error {
	return h.register(c, auth.RoleCustomer, "Registration successful")
}

// AdminRegister creates an ADMIN account.
func (h *Auth) AdminRegister(c *fiber.Ctx) error {
	return h.register(c, auth.RoleAdmin, "Admin registration successful")
}

func (h *Auth) register(c *fiber.Ctx, role auth.Role, message string) error {
	payload := RegisterRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest("invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return err
	}

	user, err := h.users.Create(c.UserContext(), &store.User{
		Name:         payload.Name,
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		Role:         role,
		Provider:     auth.ProviderLocal,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	token, err := h.tokens.Issue(user.Identity())
	if err != nil {
		return err
	}

	h.logger.Info("registered %s account %s", role, user.Email)

	return c.Status(fiber.StatusCreated).JSON(tokenResponse(message, token, user))
}

// Login verifies a local credential and answers with a fresh token.
// Failures are uniform: the caller cannot tell an unknown email from
// a wrong password.
func (h *Auth) Login(c *fiber.Ctx) error {
	return h.login(c, "", "Login successful")
}

// AdminLogin additionally requires the account to hold the ADMIN role
// before the password is even checked.
func (h *Auth) AdminLogin(c *fiber.Ctx) error {
	return h.login(c, auth.RoleAdmin, "Admin login successful")
}

func (h *Auth) login(c *fiber.Ctx, requiredRole auth.Role, message string) error {
	payload := LoginRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest("invalid request body")
	}
	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	user, err := h.users.FindByEmail(c.UserContext(), strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		if store.IsNotFound(err) {
			return auth.ErrInvalidCredentials
		}
		return err
	}

	if requiredRole != "" && user.Role != requiredRole {
		return auth.ErrRoleDenied
	}

	// federated accounts carry no hash and never take the password path
	if err := auth.ComparePasswordAndHash(payload.Password, user.PasswordHash); err != nil {
		return auth.ErrInvalidCredentials
	}

	token, err := h.tokens.Issue(user.Identity())
	if err != nil {
		return err
	}

	return c.JSON(tokenResponse(message, token, user))
}

// Me echoes the verified claims of the presented bearer token. The
// route is exempt from the filter, so it verifies the header itself.
func (h *Auth) Me(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return auth.ErrUnauthenticated
	}

	claims, err := h.tokens.Verify(strings.TrimSpace(header[len("Bearer "):]))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"userId": claims.UserID,
		"email":  claims.Subject(),
		"role":   claims.Role(),
		"name":   claims.Name,
	})
}

// Profile returns the stored account of the authenticated caller,
// fetched fresh so it reflects changes made after the token was
// issued. The identity arrives on the request context via the filter.
func (h *Auth) Profile(c *fiber.Ctx) error {
	identity, err := auth.RequireAuthenticated(c.UserContext())
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(c.UserContext(), identity.ID())
	if err != nil {
		if store.IsNotFound(err) {
			return auth.ErrUnknownSubject
		}
		return err
	}

	resp := fiber.Map{
		"userId":   user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"role":     user.Role,
		"provider": user.Provider,
	}
	if claims, ok := auth.ClaimsFromContext(c.UserContext()); ok {
		resp["tokenExpires"] = claims.Expires()
	}
	return c.JSON(resp)
}

func tokenResponse(message, token string, user *store.User) fiber.Map {
	return fiber.Map{
		"message": message,
		"token":   token,
		"role":    user.Role,
		"userId":  user.ID,
		"name":    user.Name,
		"email":   user.Email,
	}
}

func badRequest(message string) error {
	return errors.New(message, errors.CategoryBadInput).
		WithCode(errors.CodeBadRequest)
}

func validationError(err error) error {
	return errors.New(err.Error(), errors.CategoryValidation).
		WithCode(errors.CodeBadRequest)
}

package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cinehall/backend/internal/auth"
	"github.com/cinehall/backend/internal/store"
)

// Admin serves the back-office dashboard endpoints. Every route
// requires an ADMIN identity.
type Admin struct {
	users  *store.Users
	movies *store.Movies
	logger auth.Logger
}

// NewAdmin creates the admin handler.
func NewAdmin(users *store.Users, movies *store.Movies, logger auth.Logger) *Admin {
	return &Admin{
		users:  users,
		movies: movies,
		logger: logger,
	}
}

// Register mounts the back-office routes.
func (h *Admin) Register(app *fiber.App) {
	grp := app.Group("/api/admin")
	grp.Get("/users", h.Users)
	grp.Get("/dashboard", h.Dashboard)
}

// Users lists every account for the back office.
func (h *Admin) Users(c *fiber.Ctx) error {
	if _, err := auth.RequireRole(c.UserContext(), auth.RoleAdmin); err != nil {
		return err
	}

	users, err := h.users.All(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// Dashboard returns headline counts for the back-office landing page.
func (h *Admin) Dashboard(c *fiber.Ctx) error {
	admin, err := auth.RequireRole(c.UserContext(), auth.RoleAdmin)
	if err != nil {
		return err
	}

	userCount, err := h.users.Count(c.UserContext())
	if err != nil {
		return err
	}

	movies, err := h.movies.List(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":    "Welcome, " + admin.Name(),
		"userCount":  userCount,
		"movieCount": len(movies),
	})
}

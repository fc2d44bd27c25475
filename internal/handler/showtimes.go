package handler

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"

	"github.com/cinehall/backend/internal/auth"
	"github.com/cinehall/backend/internal/store"
)

// Showtimes serves screening schedules: public list/detail plus
// admin-gated mutations.
type Showtimes struct {
	showtimes *store.Showtimes
	movies    *store.Movies
	logger    auth.Logger
}

// NewShowtimes creates the showtime handler.
func NewShowtimes(showtimes *store.Showtimes, movies *store.Movies, logger auth.Logger) *Showtimes {
	return &Showtimes{
		showtimes: showtimes,
		movies:    movies,
		logger:    logger,
	}
}

// Register mounts the schedule routes.
func (h *Showtimes) Register(app *fiber.App) {
	pub := app.Group("/api/showtimes")
	pub.Get("/", h.List)
	pub.Get("/:id", h.Get)

	adm := app.Group("/api/admin/showtimes")
	adm.Get("/", h.AdminList)
	adm.Post("/", h.Create)
	adm.Put("/:id", h.Update)
	adm.Delete("/:id", h.Delete)
}

// ShowtimePayload is the create/update body.
type ShowtimePayload struct {
	MovieID   *int64   `json:"movieId"`
	ShowDate  *string  `json:"showDate"`
	StartTime *string  `json:"startTime"`
	EndTime   *string  `json:"endTime"`
	Price     *float64 `json:"price"`
	Status    *string  `json:"status"`
}

// ValidateCreate enforces the required fields of a new showtime.
func (p ShowtimePayload) ValidateCreate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.MovieID, validation.Required),
		validation.Field(&p.ShowDate, validation.Required),
		validation.Field(&p.StartTime, validation.Required),
		validation.Field(&p.EndTime, validation.Required),
		validation.Field(&p.Price, validation.Required),
	)
}

func (h *Showtimes) List(c *fiber.Ctx) error {
	var movieID int64
	if raw := c.Query("movieId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return badRequest("invalid movieId")
		}
		movieID = parsed
	}

	showtimes, err := h.showtimes.List(c.UserContext(), movieID, c.Query("date"))
	if err != nil {
		return err
	}
	return c.JSON(showtimes)
}

func (h *Showtimes) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	showtime, err := h.showtimes.Find(c.UserContext(), id)
	if err != nil {
		if store.IsNotFound(err) {
			return notFound("Showtime not found")
		}
		return err
	}

	return c.JSON(showtime)
}

func (h *Showtimes) AdminList(c *fiber.Ctx) error {
	if _, err := auth.RequireRole(c.UserContext(), auth.RoleAdmin); err != nil {
		return err
	}
	return h.List(c)
}

func (h *Showtimes) Create(c *fiber.Ctx) error {
	admin, err := auth.RequireRole(c.UserContext(), auth.RoleAdmin)
	if err != nil {
		return err
	}

	payload := ShowtimePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest("invalid request body")
	}
	if err := payload.ValidateCreate(); err != nil {
		return validationError(err)
	}

	if _, err := h.movies.Find(c.UserContext(), *payload.MovieID); err != nil {
		if store.IsNotFound(err) {
			return notFound("Movie not found")
		}
		return err
	}

	showtime := &store.Showtime{}
	payload.apply(showtime)

	showtime, err = h.showtimes.Create(c.UserContext(), showtime)
	if err != nil {
		return err
	}

	h.logger.Info("showtime %d created by %s", showtime.ID, admin.Email())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Showtime created successfully",
		"showtime": showtime,
	})
}

func (h *Showtimes) Update(c *fiber.Ctx) error {
	if _, err := auth.RequireRole(c.UserContext(), auth.RoleAdmin); err != nil {
		return err
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	showtime, err := h.showtimes.Find(c.UserContext(), id)
	if err != nil {
		if store.IsNotFound(err) {
			return notFound("Showtime not found")
		}
		return err
	}

	payload := ShowtimePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest("invalid request body")
	}
	payload.apply(showtime)

	showtime, err = h.showtimes.Update(c.UserContext(), showtime)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":  "Showtime updated successfully",
		"showtime": showtime,
	})
}

func (h *Showtimes) Delete(c *fiber.Ctx) error {
	if _, err := auth.RequireRole(c.UserContext(), auth.RoleAdmin); err != nil {
		return err
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.showtimes.Find(c.UserContext(), id); err != nil {
		if store.IsNotFound(err) {
			return notFound("Showtime not found")
		}
		return err
	}

	if err := h.showtimes.Delete(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Showtime deleted successfully"})
}

func (p ShowtimePayload) apply(showtime *store.Showtime) {
	if p.MovieID != nil {
		showtime.MovieID = *p.MovieID
	}
	if p.ShowDate != nil {
		showtime.ShowDate = *p.ShowDate
	}
	if p.StartTime != nil {
		showtime.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		showtime.EndTime = *p.EndTime
	}
	if p.Price != nil {
		showtime.Price = *p.Price
	}
	if p.Status != nil {
		showtime.Status = *p.Status
	}
}

package handler

import (
	"encoding/base64"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/cinehall/backend/internal/auth"
	"github.com/cinehall/backend/internal/store"
)

// Movies serves the movie catalog: public reads plus admin-gated
// mutations.
type Movies struct {
	movies *store.Movies
	photos *store.MoviePhotos
	logger auth.Logger
}

// NewMovies creates the movie handler.
func NewMovies(movies *store.Movies, photos *store.MoviePhotos, logger auth.Logger) *Movies {
	return &Movies{
		movies: movies,
		photos: photos,
		logger: logger,
	}
}

// Register mounts the catalog routes.
func (h *Movies) Register(app *fiber.App) {
	pub := app.Group("/api/movies")
	pub.Get("/", h.List)
	pub.Get("/showing", h.CurrentlyShowing)
	pub.Get("/coming-soon", h.ComingSoon)
	pub.Get("/search", h.Search)
	pub.Get("/:id", h.Get)

	adm := app.Group("/api/admin/movies")
	adm.Get("/", h.AdminList)
	adm.Post("/", h.Create)
	adm.Get("/:id", h.AdminGet)
	adm.Put("/:id", h.Update)
	adm.Delete("/:id", h.Delete)
}

// MoviePayload is the create/update body. Pointer fields distinguish
// "absent" from "zero" on partial updates.
type MoviePayload struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Genre           *string  `json:"genre"`
	DurationMinutes *int     `json:"durationMinutes"`
	StartTime       *string  `json:"startTime"`
	Language        *string  `json:"language"`
	Rating          *string  `json:"rating"`
	ReleaseDate     *string  `json:"releaseDate"`
	ShowStartDate   *string  `json:"showStartDate"`
	ShowEndDate     *string  `json:"showEndDate"`
	Director        *string  `json:"director"`
	Cast            *string  `json:"cast"`
	Status          *string  `json:"status"`
}

// ValidateCreate enforces the required fields of a new movie.
func (p MoviePayload) ValidateCreate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.DurationMinutes, validation.Required),
		validation.Field(&p.StartTime, validation.Required),
	)
}

func (h *Movies) List(c *fiber.Ctx) error {
	movies, err := h.movies.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(h.toDTOs(c, movies))
}

func (h *Movies) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	movie, err := h.movies.Find(c.UserContext(), id)
	if err != nil {
		if store.IsNotFound(err) {
			return notFound("Movie not found")
		}
		return err
	}

	return c.JSON(h.toDTO(c, movie))
}

func (h *Movies) CurrentlyShowing(c *fiber.Ctx) error {
	movies, err := h.movies.CurrentlyShowing(c.UserContext(), today())
	if err != nil {
		return err
	}
	return c.JSON(h.toDTOs(c, movies))
}

func (h *Movies) ComingSoon(c *fiber.Ctx) error {
	movies, err := h.movies.ComingSoon(c.UserContext(), today())
	if err != nil {
		return err
	}
	return c.JSON(h.toDTOs(c, movies))
}

func (h *Movies) Search(c *fiber.Ctx) error {
	movies, err := h.movies.Search(c.UserContext(),
		c.Query("title"),
		c.Query("genre"),
		c.Query("status"),
	)
	if err != nil {
		return err
	}
	return c.JSON(h.toDTOs(c, movies))
}

func (h *Movies) AdminList(c *fiber.Ctx) error {
	if _, err := auth.RequireRole(c.UserContext(), auth.RoleAdmin); err != nil {
		return err
	}
	return h.List(c)
}

func (h *Movies) AdminGet(c *fiber.Ctx) error {
	if _, err := auth.RequireRole(c.UserContext(), auth.RoleAdmin); err != nil {
		return err
	}
	return h.Get(c)
}

func (h *Movies) Create(c *fiber.Ctx) error {
	admin, err := auth.RequireRole(c.UserContext(), auth.RoleAdmin)
	if err != nil {
		return err
	}

	payload := MoviePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest("invalid request body")
	}
	if err := payload.ValidateCreate(); err != nil {
		return validationError(err)
	}

	movie := &store.Movie{}
	payload.apply(movie)

	movie, err = h.movies.Create(c.UserContext(), movie)
	if err != nil {
		return err
	}

	h.logger.Info("movie %d created by %s", movie.ID, admin.Email())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Movie created successfully",
		"movieId": movie.ID,
		"movie":   h.toDTO(c, movie),
	})
}

func (h *Movies) Update(c *fiber.Ctx) error {
	if _, err := auth.RequireRole(c.UserContext(), auth.RoleAdmin); err != nil {
		return err
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	movie, err := h.movies.Find(c.UserContext(), id)
	if err != nil {
		if store.IsNotFound(err) {
			return notFound("Movie not found")
		}
		return err
	}

	payload := MoviePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest("invalid request body")
	}
	payload.apply(movie)

	movie, err = h.movies.Update(c.UserContext(), movie)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Movie updated successfully",
		"movie":   h.toDTO(c, movie),
	})
}

func (h *Movies) Delete(c *fiber.Ctx) error {
	admin, err := auth.RequireRole(c.UserContext(), auth.RoleAdmin)
	if err != nil {
		return err
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.movies.Find(c.UserContext(), id); err != nil {
		if store.IsNotFound(err) {
			return notFound("Movie not found")
		}
		return err
	}

	if err := h.movies.Delete(c.UserContext(), id); err != nil {
		return err
	}

	h.logger.Info("movie %d deleted by %s", id, admin.Email())

	return c.JSON(fiber.Map{"message": "Movie deleted successfully"})
}

// MovieDTO is a movie plus its primary poster, base64-encoded the way
// the front-end consumes it.
type MovieDTO struct {
	store.Movie
	PrimaryPhotoBase64 string `json:"primaryPhotoBase64,omitempty"`
}

func (h *Movies) toDTO(c *fiber.Ctx, movie *store.Movie) MovieDTO {
	dto := MovieDTO{Movie: *movie}
	if photo, err := h.photos.FindPrimary(c.UserContext(), movie.ID); err == nil {
		dto.PrimaryPhotoBase64 = base64.StdEncoding.EncodeToString(photo.PhotoData)
	}
	return dto
}

func (h *Movies) toDTOs(c *fiber.Ctx, movies []store.Movie) []MovieDTO {
	dtos := make([]MovieDTO, 0, len(movies))
	for i := range movies {
		dtos = append(dtos, h.toDTO(c, &movies[i]))
	}
	return dtos
}

func (p MoviePayload) apply(movie *store.Movie) {
	if p.Title != nil {
		movie.Title = *p.Title
	}
	if p.Description != nil {
		movie.Description = *p.Description
	}
	if p.Genre != nil {
		movie.Genre = *p.Genre
	}
	if p.DurationMinutes != nil {
		movie.DurationMinutes = *p.DurationMinutes
	}
	if p.StartTime != nil {
		movie.StartTime = *p.StartTime
	}
	if p.Language != nil {
		movie.Language = *p.Language
	}
	if p.Rating != nil {
		movie.Rating = *p.Rating
	}
	if p.ReleaseDate != nil {
		movie.ReleaseDate = *p.ReleaseDate
	}
	if p.ShowStartDate != nil {
		movie.ShowStartDate = *p.ShowStartDate
	}
	if p.ShowEndDate != nil {
		movie.ShowEndDate = *p.ShowEndDate
	}
	if p.Director != nil {
		movie.Director = *p.Director
	}
	if p.Cast != nil {
		movie.Cast = *p.Cast
	}
	if p.Status != nil {
		movie.Status = *p.Status
	}
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid " + name)
	}
	return id, nil
}

func notFound(message string) error {
	return errors.New(message, errors.CategoryNotFound).
		WithCode(errors.CodeNotFound)
}

func today() string {
	return time.Now().Format("2006-01-02")
}

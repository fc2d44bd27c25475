package handler

import (
	"encoding/base64"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/cinehall/backend/internal/auth"
	"github.com/cinehall/backend/internal/store"
)

// maxPhotoBytes caps multipart poster uploads.
const maxPhotoBytes = 10 << 20

// Photos serves movie poster uploads and downloads. Listing is public,
// uploads and deletes are admin-only.
type Photos struct {
	photos *store.MoviePhotos
	movies *store.Movies
	logger auth.Logger
}

// NewPhotos creates the photo handler.
func NewPhotos(photos *store.MoviePhotos, movies *store.Movies, logger auth.Logger) *Photos {
	return &Photos{
		photos: photos,
		movies: movies,
		logger: logger,
	}
}

// Register mounts the photo routes.
func (h *Photos) Register(app *fiber.App) {
	app.Get("/api/movies/:id/photos", h.ListByMovie)
	app.Get("/api/photos/:id", h.Get)

	app.Post("/api/admin/movies/:id/photos", h.Upload)
	app.Delete("/api/admin/photos/:id", h.Delete)
}

// PhotoDTO carries the image bytes base64-encoded for JSON transport.
type PhotoDTO struct {
	ID        int64  `json:"id"`
	MovieID   int64  `json:"movieId"`
	IsPrimary bool   `json:"isPrimary"`
	Data      string `json:"data"`
}

func toPhotoDTO(photo *store.MoviePhoto) PhotoDTO {
	return PhotoDTO{
		ID:        photo.ID,
		MovieID:   photo.MovieID,
		IsPrimary: photo.IsPrimary,
		Data:      base64.StdEncoding.EncodeToString(photo.PhotoData),
	}
}

func (h *Photos) ListByMovie(c *fiber.Ctx) error {
	movieID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	photos, err := h.photos.ListByMovie(c.UserContext(), movieID)
	if err != nil {
		return err
	}

	dtos := make([]PhotoDTO, 0, len(photos))
	for i := range photos {
		dtos = append(dtos, toPhotoDTO(&photos[i]))
	}
	return c.JSON(dtos)
}

func (h *Photos) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	photo, err := h.photos.Find(c.UserContext(), id)
	if err != nil {
		if store.IsNotFound(err) {
			return notFound("Photo not found")
		}
		return err
	}

	return c.JSON(toPhotoDTO(photo))
}

// Upload accepts a multipart form with a "file" part and an optional
// "isPrimary" field.
func (h *Photos) Upload(c *fiber.Ctx) error {
	admin, err := auth.RequireRole(c.UserContext(), auth.RoleAdmin)
	if err != nil {
		return err
	}

	movieID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.movies.Find(c.UserContext(), movieID); err != nil {
		if store.IsNotFound(err) {
			return notFound("Movie not found")
		}
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest("missing file")
	}
	if fileHeader.Size > maxPhotoBytes {
		return badRequest("file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badRequest("unreadable file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return badRequest("unreadable file")
	}
	if len(data) == 0 {
		return badRequest("empty file")
	}

	photo := &store.MoviePhoto{
		MovieID:   movieID,
		PhotoData: data,
		IsPrimary: c.FormValue("isPrimary") == "true",
	}

	photo, err = h.photos.Create(c.UserContext(), photo)
	if err != nil {
		return err
	}

	h.logger.Info("photo %d uploaded for movie %d by %s", photo.ID, movieID, admin.Email())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Photo uploaded successfully",
		"photoId":   photo.ID,
		"isPrimary": photo.IsPrimary,
	})
}

func (h *Photos) Delete(c *fiber.Ctx) error {
	if _, err := auth.RequireRole(c.UserContext(), auth.RoleAdmin); err != nil {
		return err
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.photos.Find(c.UserContext(), id); err != nil {
		if store.IsNotFound(err) {
			return notFound("Photo not found")
		}
		return err
	}

	if err := h.photos.Delete(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Photo deleted successfully"})
}

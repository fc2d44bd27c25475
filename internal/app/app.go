package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/goliatone/go-errors"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	"github.com/cinehall/backend/internal/auth"
	"github.com/cinehall/backend/internal/config"
	"github.com/cinehall/backend/internal/handler"
	"github.com/cinehall/backend/internal/logging"
	"github.com/cinehall/backend/internal/middleware"
	"github.com/cinehall/backend/internal/social"
	"github.com/cinehall/backend/internal/store"
)

// App wires configuration, storage, the auth core, and the HTTP
// surface into one runnable unit.
type App struct {
	Fiber  *fiber.App
	Config *config.Config
	DB     *bun.DB
	Tokens auth.TokenService
	Users  *store.Users

	logger *logrus.Logger
}

// New assembles the application. The caller owns the database handle
// lifetime via Close.
func New(cfg *config.Config, logger *logrus.Logger) (*App, error) {
	db, err := store.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenService(
		[]byte(cfg.Auth.SigningSecret),
		cfg.Auth.TokenTTL,
		logging.NewAdapter(logger, "auth"),
	)

	users := store.NewUsers(db)
	movies := store.NewMovies(db)
	showtimes := store.NewShowtimes(db)
	photos := store.NewMoviePhotos(db)

	f := fiber.New(fiber.Config{
		AppName:      "cinehall",
		ErrorHandler: ErrorHandler(logging.NewAdapter(logger, "http")),
	})

	f.Use(recover.New())
	f.Use(requestid.New())
	f.Use(middleware.BearerAuth(middleware.Config{
		Tokens:         tokens,
		Users:          users,
		ExemptPrefixes: cfg.Auth.ExemptPrefixes,
		Logger:         logging.NewAdapter(logger, "filter"),
	}))

	f.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	handler.NewAuth(users, tokens, logging.NewAdapter(logger, "auth-http")).Register(f)
	handler.NewMovies(movies, photos, logging.NewAdapter(logger, "movies")).Register(f)
	handler.NewShowtimes(showtimes, movies, logging.NewAdapter(logger, "showtimes")).Register(f)
	handler.NewPhotos(photos, movies, logging.NewAdapter(logger, "photos")).Register(f)
	handler.NewAdmin(users, movies, logging.NewAdapter(logger, "admin")).Register(f)

	if cfg.Google.ClientID != "" {
		provider := social.NewGoogleProvider(social.GoogleConfig{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
		})
		linker := social.NewLinker(users, tokens, logging.NewAdapter(logger, "social"))
		social.NewHandler(provider, linker, social.HTTPConfig{
			SuccessRedirect: cfg.Frontend.CallbackURL,
		}).Register(f)
	} else {
		logger.Warn("google client not configured, federated login disabled")
	}

	return &App{
		Fiber:  f,
		Config: cfg,
		DB:     db,
		Tokens: tokens,
		Users:  users,
		logger: logger,
	}, nil
}

// Listen blocks serving HTTP on the configured address.
func (a *App) Listen() error {
	a.logger.WithField("addr", a.Config.ListenAddr()).Info("server listening")
	return a.Fiber.Listen(a.Config.ListenAddr())
}

// Shutdown drains in-flight requests and releases the database.
func (a *App) Shutdown() error {
	if err := a.Fiber.Shutdown(); err != nil {
		return err
	}
	return a.DB.Close()
}

// ErrorHandler maps rich errors onto HTTP responses. Every error body
// has the same single-field shape the front-end expects.
func ErrorHandler(logger auth.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = noopLogger{}
	}
	return func(c *fiber.Ctx, err error) error {
		var rich *errors.Error
		if errors.As(err, &rich) {
			status := rich.Code
			if status < 400 || status > 599 {
				status = fiber.StatusInternalServerError
			}
			if status >= 500 {
				logger.Error("request failed: %v", err)
			}
			return c.Status(status).JSON(fiber.Map{"error": rich.Message})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		logger.Error("unhandled error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

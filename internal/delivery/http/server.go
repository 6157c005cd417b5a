package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/org-directory/internal/config"
	"github.com/org-directory/internal/delivery/http/handler"
	"github.com/org-directory/internal/delivery/http/middleware"
	"github.com/org-directory/internal/pkg/errors"
	"github.com/org-directory/internal/pkg/utils"
)

// Handlers - набор обработчиков HTTP API
type Handlers struct {
	Organization *handler.OrganizationHandler
	Activity     *handler.ActivityHandler
	Building     *handler.BuildingHandler
	PhoneNumber  *handler.PhoneNumberHandler
	Filler       *handler.FillerHandler
	Health       *handler.HealthHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	handlers     Handlers
	cacheStorage fiber.Storage
}

// NewServer - создание нового HTTP сервера.
// cacheStorage - хранилище кеша ответов; при nil кеш живёт в памяти процесса.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers Handlers,
	cacheStorage fiber.Storage,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Organization Directory",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:          app,
		config:       cfg,
		logger:       logger,
		handlers:     handlers,
		cacheStorage: cacheStorage,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App exposes the fiber application, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(requestid.New())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Auth.HeaderName))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	s.app.Use(middleware.APIKey(s.config.Auth.HeaderName, s.config.Auth.Token, s.logger))

	if s.config.Cache.Backend != config.CacheBackendNone && s.config.Cache.ResponseTTL > 0 {
		s.app.Use(middleware.ResponseCache(s.config.Cache.ResponseTTL, s.cacheStorage))
	}
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	h := s.handlers

	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")
	api.Get("/health", h.Health.Health)

	orgs := api.Group("/organizations")
	orgs.Get("/", h.Organization.Search)
	orgs.Post("/", h.Organization.Create)
	orgs.Get("/:id", h.Organization.GetByID)
	orgs.Put("/:id", h.Organization.Update)
	orgs.Delete("/:id", h.Organization.Delete)
	orgs.Post("/:id/activities", h.Organization.AssignActivities)
	orgs.Delete("/:id/activities", h.Organization.UnassignActivities)
	orgs.Post("/:id/phone-numbers", h.Organization.AssignPhoneNumbers)
	orgs.Delete("/:id/phone-numbers", h.Organization.UnassignPhoneNumbers)

	activities := api.Group("/activities")
	activities.Get("/", h.Activity.GetAll)
	activities.Post("/", h.Activity.Create)
	activities.Get("/:id", h.Activity.GetByID)
	activities.Put("/:id", h.Activity.Update)
	activities.Delete("/:id", h.Activity.Delete)
	activities.Get("/:id/descendants", h.Activity.Descendants)

	buildings := api.Group("/buildings")
	buildings.Get("/", h.Building.GetAll)
	buildings.Post("/", h.Building.Create)
	buildings.Get("/:id", h.Building.GetByID)
	buildings.Put("/:id", h.Building.Update)
	buildings.Delete("/:id", h.Building.Delete)

	phones := api.Group("/phone-numbers")
	phones.Get("/", h.PhoneNumber.GetAll)
	phones.Post("/", h.PhoneNumber.Create)
	phones.Get("/:id", h.PhoneNumber.GetByID)
	phones.Put("/:id", h.PhoneNumber.Update)
	phones.Delete("/:id", h.PhoneNumber.Delete)

	api.Post("/filler/fill", h.Filler.Fill)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок.
// Ошибки fiber (неизвестный маршрут, метод) сохраняют свой статус, остальные
// отдаются как внутренняя ошибка без текста причины.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(utils.ErrorResponse{
				Error: errors.New(kindForStatus(e.Code), statusCode(e.Code), e.Message),
			})
		}

		if _, ok := errors.As(err); ok {
			return utils.SendError(c, err)
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, errors.Internal())
	}
}

func kindForStatus(status int) errors.Kind {
	switch status {
	case fiber.StatusNotFound:
		return errors.KindNotFound
	case fiber.StatusUnauthorized:
		return errors.KindUnauthorized
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusMethodNotAllowed:
		return errors.KindValidation
	default:
		return errors.KindUnknown
	}
}

func statusCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return errors.CodeNotFound
	case fiber.StatusUnauthorized:
		return errors.CodeUnauthorized
	case fiber.StatusInternalServerError:
		return errors.CodeInternal
	default:
		return errors.CodeInvalidRequest
	}
}

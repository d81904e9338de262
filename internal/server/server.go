// Package server contains the HTTP and WebSocket handlers of the community API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "nexus/docs" // swagger docs
	"nexus/internal/assistant"
	"nexus/internal/config"
	"nexus/internal/featureflags"
	"nexus/internal/middleware"
	"nexus/internal/models"
	"nexus/internal/notifications"
	"nexus/internal/repository"
	"nexus/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	store          *repository.Store
	state          *service.State
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	assistant      *assistant.Client
	chats          *assistant.Sessions
	notifier       *notifications.Notifier
	hub            *notifications.Hub
	featureFlags   *featureflags.Manager
}

// NewServerWithDeps creates a Server over an opened store. The domain state is
// restored from the store before the server is returned. redisClient may be nil,
// in which case re-render events are delivered to local websocket clients only.
func NewServerWithDeps(ctx context.Context, cfg *config.Config, store *repository.Store, redisClient *redis.Client, gen assistant.Generator) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("server requires a store")
	}

	state := service.NewState(store, service.WithLogger(middleware.Logger))
	state.Load(ctx)

	client := assistant.NewClient(gen)

	server := &Server{
		config:         cfg,
		store:          store,
		state:          state,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("nexus-api"),
		assistant:      client,
		chats:          assistant.NewSessions(client, middleware.Logger),
		hub:            notifications.NewHub(),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}
	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
	}
	state.Subscribe(server.publishChange)

	return server, nil
}

// State exposes the domain state, mainly for bootstrap and tests.
func (s *Server) State() *service.State {
	return s.state
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        200,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes registers every API route on app.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api", middleware.SessionOptional, middleware.ContextMiddleware())
	api.Get("/", s.ReadinessCheck)
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "MIR Nexus Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)
	auth.Get("/me", s.GetMe)

	api.Get("/departments", s.GetDepartments)
	api.Get("/feature-flags", s.GetFeatureFlags)

	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", s.CreatePost)
	posts.Post("/:id/like", s.LikePost)

	meetings := api.Group("/meetings")
	meetings.Get("/", s.GetMeetings)
	meetings.Get("/department", s.GetDepartmentMeetings)
	meetings.Post("/", s.CreateMeeting)
	meetings.Delete("/:id", s.DeleteMeeting)

	children := api.Group("/children", s.ChildrenRegistryRequired())
	children.Get("/", s.GetChildren)
	children.Post("/", s.CreateChild)
	children.Post("/insights", s.GetAttendanceInsights)
	children.Delete("/:id", s.DeleteChild)

	api.Get("/dashboard", s.GetDashboard)

	api.Get("/navigation", s.GetNavigation)
	api.Put("/navigation", s.Navigate)

	chat := api.Group("/chat")
	chat.Get("/", s.GetChat)
	chat.Post("/", s.SendChat)
	chat.Delete("/", s.ResetChat)

	settings := api.Group("/settings")
	settings.Get("/export", s.ExportData)
	settings.Post("/import", s.ImportData)
	settings.Delete("/data", s.WipeData)

	api.Get("/ws", s.WebsocketHandler())
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	storeStatus := "healthy"
	if err := s.store.Ping(ctx); err != nil {
		storeStatus = "unhealthy"
	}

	// Redis is optional; only the store decides readiness.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if storeStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "MIR Nexus",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"store":   storeStatus,
			"backend": s.store.Backend(),
			"redis":   redisStatus,
		},
		"time": time.Now(),
	})
}

// App builds the Fiber application with middleware and routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "MIR Nexus API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start wires the websocket hub to Redis and listens on the configured port.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.App()

	if s.notifier != nil {
		go func() {
			if err := s.startWiring(s.shutdownCtx); err != nil {
				middleware.Logger.Error("failed to start hub wiring",
					slog.String("hub", s.hub.Name()), slog.String("error", err.Error()))
			}
		}()
	}

	middleware.Logger.Info("server starting",
		slog.String("port", s.config.Port), slog.String("store", s.store.Backend()))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if err := s.hub.Shutdown(ctx); err != nil {
		middleware.Logger.Error("error shutting down hub", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}

package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ryancham715/sav4us/internal/api/http/handler"
	"github.com/ryancham715/sav4us/internal/api/http/middleware"
	"github.com/ryancham715/sav4us/internal/logger"
	"github.com/ryancham715/sav4us/internal/service"
)

// Router wires handlers and middleware into a fiber application.
type Router struct {
	authService    *service.Auth
	pairingService *service.Pairing
	projectService *service.Project
	tokenService   *service.TokenService
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	pairingService *service.Pairing,
	projectService *service.Project,
	tokenService *service.TokenService,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		pairingService: pairingService,
		projectService: projectService,
		tokenService:   tokenService,
		logger:         logger,
	}
}

// Register builds the fiber app with all routes and middleware.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.logger)

	app.Use(logging.Handle)
	app.Use(authenticate.Handle)

	v1 := app.Group("/v1")

	authHandler := handler.NewAuth(r.authService, r.tokenService, r.logger)
	auth := v1.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	pairingHandler := handler.NewPairing(r.pairingService, r.logger)
	v1.Get("/me", pairingHandler.Me)
	v1.Get("/me/watch", pairingHandler.WatchMe)

	pairing := v1.Group("/pairing")
	pairing.Post("/invites", pairingHandler.SendInvite)
	pairing.Get("/invites/incoming", pairingHandler.Incoming)
	pairing.Get("/invites/incoming/watch", pairingHandler.WatchIncoming)
	pairing.Get("/invites/outgoing", pairingHandler.Outgoing)
	pairing.Get("/invites/outgoing/watch", pairingHandler.WatchOutgoing)
	pairing.Post("/invites/:id/accept", pairingHandler.Accept)
	pairing.Post("/invites/:id/ignore", pairingHandler.Ignore)

	projectHandler := handler.NewProject(r.projectService, r.logger)
	projects := v1.Group("/projects")
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/watch", projectHandler.Watch)

	return app
}

package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/postboard/docs"
	"github.com/99minutos/postboard/internal/api/handler"
	"github.com/99minutos/postboard/internal/api/middleware"
	"github.com/99minutos/postboard/internal/core/ports"
	"github.com/99minutos/postboard/internal/pkg/config"
)

// RouterDeps carries everything NewRouter wires into routes.
type RouterDeps struct {
	Config      *config.Config
	Logger      zerolog.Logger
	Sessions    ports.SessionStore
	AuthService ports.AuthService
	PostService ports.PostService
	Readiness   *handler.HealthDependenciesHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{deps.Config.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderXRequestID},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("postboard"))

	// --- Operational routes (no session) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	sessions := middleware.Session(middleware.SessionConfig{
		Store:      deps.Sessions,
		Secret:     deps.Config.Session.Secret,
		CookieName: deps.Config.Session.CookieName,
		TTL:        deps.Config.Session.TTL,
		Secure:     deps.Config.SecureCookies(),
		Logger:     deps.Logger,
	})
	requireAuth := middleware.RequireAuth()

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	auth := e.Group("/auth", sessions)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/change-password", authHandler.ChangePassword, requireAuth)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Post routes (session required) ---
	postHandler := handler.NewPostHandler(deps.PostService)
	posts := e.Group("/posts", sessions, requireAuth)
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.POST("", postHandler.Create)
	posts.PATCH("/:id", postHandler.Update)
	posts.DELETE("/:id", postHandler.Delete)

	return e
}

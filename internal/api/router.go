package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cardly/business-card-api/docs"
	"github.com/cardly/business-card-api/internal/api/handler"
	"github.com/cardly/business-card-api/internal/api/middleware"
	"github.com/cardly/business-card-api/internal/core/domain"
	"github.com/cardly/business-card-api/internal/core/ports"
	"github.com/cardly/business-card-api/internal/infrastructure/storage"
)

const photoRoute = "/api/profile/photo"

// maxPhotoBody bounds a photo upload request: the image plus multipart framing.
const maxPhotoBody = 2 * domain.MaxPhotoBytes

// RouterDeps holds everything the HTTP layer needs.
type RouterDeps struct {
	Identity ports.IdentityService
	Profiles ports.ProfileService
	Checks   []handler.DependencyCheck
	Log      zerolog.Logger

	// AuthRateLimit is the per-IP request rate allowed on /api/auth routes.
	// Zero disables the limiter.
	AuthRateLimit float64
	// UploadDir is served under /uploads when set.
	UploadDir string
	// Metrics enables the Prometheus middleware and /metrics endpoint.
	Metrics *prometheus.Registry
	// AllowOrigins defaults to any origin.
	AllowOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// @title        Digital Business Card API
// @version      1.0
// @description  Signup, login and business card management.
// @BasePath     /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        x-auth-token
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.AllowOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, middleware.TokenHeader,
		},
	}))
	e.Use(echomiddleware.BodyLimitWithConfig(echomiddleware.BodyLimitConfig{
		Limit: "4M",
		// the photo route enforces its own limit
		Skipper: func(c echo.Context) bool {
			return c.Path() == photoRoute
		},
	}))
	if deps.Metrics != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "http",
			Registerer: deps.Metrics,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Metrics,
		}))
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Identity)
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	qrHandler := handler.NewQRCodeHandler(deps.Profiles)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks...)

	requireAuth := middleware.Auth(deps.Identity)

	// --- Auth routes ---
	var authMW []echo.MiddlewareFunc
	if deps.AuthRateLimit > 0 {
		authMW = append(authMW, middleware.RateLimit(deps.AuthRateLimit))
	}
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup, authMW...)
	auth.POST("/login", authHandler.Login, authMW...)

	// --- Profile routes ---
	profile := e.Group("/api/profile")
	profile.GET("/public/:publicUrl", profileHandler.GetPublic)
	profile.GET("/public/:publicUrl/qrcode", qrHandler.Generate)
	profile.GET("", profileHandler.Get, requireAuth)
	profile.POST("", profileHandler.Create, requireAuth)
	profile.PUT("", profileHandler.Update, requireAuth)
	e.POST(photoRoute, profileHandler.UploadPhoto, requireAuth, middleware.UploadLimit(maxPhotoBody, domain.ErrInvalidPhoto))
	profile.POST("/contact", profileHandler.AddContact, requireAuth)
	profile.DELETE("/contact/:id", profileHandler.RemoveContact, requireAuth)
	profile.POST("/social", profileHandler.AddSocial, requireAuth)
	profile.DELETE("/social/:id", profileHandler.RemoveSocial, requireAuth)

	// --- Uploaded photos ---
	if deps.UploadDir != "" {
		e.Static(storage.UploadsPrefix, deps.UploadDir)
	}

	// --- Docs ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	e.GET("/", healthHandler.Welcome)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

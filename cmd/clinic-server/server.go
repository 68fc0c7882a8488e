package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/config"
	"github.com/clinic/clinic/internal/domain/account"
	"github.com/clinic/clinic/internal/domain/admin"
	"github.com/clinic/clinic/internal/domain/identity"
	"github.com/clinic/clinic/internal/domain/scheduling"
	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/events"
	"github.com/clinic/clinic/internal/platform/jsoncodec"
	"github.com/clinic/clinic/internal/platform/middleware"
	"github.com/clinic/clinic/internal/platform/sandbox"
)

type about struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

const apiPrefix = "/api/v1"

var aboutInfo = about{
	Name:    "ClinicSys",
	Version: version,
	Description: "Management console for clinics and medical practices: patients, " +
		"doctors, clinics and appointments in one place.",
	Features: []string{
		"Patient management",
		"Doctor management with weekly availability",
		"Clinic management",
		"Appointment scheduling",
		"Light and dark themes",
		"Authenticated access",
	},
}

// newServer wires every route onto a fresh echo instance.
func newServer(cfg *config.Config, logger zerolog.Logger, b *backend, revoked *auth.RevocationStore) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsoncodec.Serializer{}

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.RequestIDHeader},
	}))
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	}

	// The API limiter runs ahead of bearer auth so unauthenticated floods are
	// throttled too.
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
		IdleTTL:           10 * time.Minute,
		Skipper: func(c echo.Context) bool {
			return !strings.HasPrefix(c.Request().URL.Path, apiPrefix+"/")
		},
	}))

	issuer := auth.NewIssuer(cfg.SessionSecret, cfg.SessionTTL)
	e.Use(auth.BearerMiddleware(auth.MiddlewareConfig{
		Issuer:  issuer,
		Revoked: revoked,
		Skipper: auth.AuthSkipper,
	}))

	// Services
	accountSvc := account.NewService(b.users, issuer, revoked, logger)
	identitySvc := identity.NewService(b.repos.Patients, b.repos.Doctors)
	adminSvc := admin.NewService(b.repos.Clinics)
	schedulingSvc := scheduling.NewService(b.repos.Appointments, identitySvc, adminSvc)

	// Live change feed
	hub := events.NewHub(logger)
	identitySvc.SetPublisher(hub)
	adminSvc.SetPublisher(hub)
	schedulingSvc.SetPublisher(hub)
	accountSvc.OnNotificationsChanged(func(userID string, enabled bool) {
		if !enabled {
			hub.DisconnectUser(userID)
		}
	})

	// Public routes
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": version})
	})
	if b.pool != nil {
		e.GET("/health/db", db.HealthHandler(b.pool))
	}

	authLimit := middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.AuthRateLimitRPS,
		BurstSize:         cfg.AuthRateLimitBurst,
		IdleTTL:           10 * time.Minute,
	})
	accountHandler := account.NewHandler(accountSvc)
	accountHandler.RegisterAuthRoutes(e.Group("/auth"), authLimit)

	apiV1 := e.Group(apiPrefix)
	apiV1.GET("/about", func(c echo.Context) error {
		return c.JSON(http.StatusOK, aboutInfo)
	})

	accountHandler.RegisterRoutes(apiV1)
	identity.NewHandler(identitySvc, accountSvc).RegisterRoutes(apiV1)
	admin.NewHandler(adminSvc, accountSvc).RegisterRoutes(apiV1)
	scheduling.NewHandler(schedulingSvc, accountSvc).RegisterRoutes(apiV1)
	events.NewHandler(hub, accountSvc, cfg.CORSOrigins, logger).RegisterRoutes(apiV1)

	if cfg.IsDev() {
		sandbox.NewSeedHandler(b.repos, logger).RegisterRoutes(apiV1.Group("/sandbox"))
	}
	return e
}

package account

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/httperr"
	"github.com/clinic/clinic/internal/platform/validation"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterAuthRoutes mounts signup, login and logout. limit wraps the two
// public routes.
func (h *Handler) RegisterAuthRoutes(g *echo.Group, limit ...echo.MiddlewareFunc) {
	g.POST("/signup", h.Signup, limit...)
	g.POST("/login", h.Login, limit...)
	g.POST("/logout", h.Logout)
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/account", h.GetProfile)
	api.PUT("/account", h.UpdateProfile)
	api.PUT("/account/password", h.ChangePassword)
	api.GET("/account/settings", h.GetSettings)
	api.PUT("/account/settings/theme", h.SetTheme)
	api.PUT("/account/settings/notifications", h.SetNotifications)
}

func (h *Handler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(err)
	}
	sess, err := h.svc.Signup(c.Request().Context(), req)
	if err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusCreated, sess)
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(err)
	}
	sess, err := h.svc.Login(c.Request().Context(), req)
	if err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, sess)
}

func (h *Handler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.svc.Logout(ctx, auth.SessionFromContext(ctx)); err != nil {
		return toHTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := h.svc.Current(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(err)
	}
	ctx := c.Request().Context()
	p, err := h.svc.UpdateProfile(ctx, auth.UserIDFromContext(ctx), req)
	if err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ChangePassword(c echo.Context) error {
	var req PasswordRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(err)
	}
	ctx := c.Request().Context()
	if err := h.svc.ChangePassword(ctx, auth.UserIDFromContext(ctx), req); err != nil {
		return toHTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()
	st, err := h.svc.Settings(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) SetTheme(c echo.Context) error {
	var req ThemeRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(err)
	}
	ctx := c.Request().Context()
	st, err := h.svc.SetTheme(ctx, auth.UserIDFromContext(ctx), req.Theme)
	if err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) SetNotifications(c echo.Context) error {
	var req NotificationsRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(err)
	}
	if req.Enabled == nil {
		return toHTTP(validation.New("enabled", "is required"))
	}
	ctx := c.Request().Context()
	st, err := h.svc.SetNotifications(ctx, auth.UserIDFromContext(ctx), *req.Enabled)
	if err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, st)
}

func toHTTP(err error) error {
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrWrongPassword), errors.Is(err, ErrPasswordMismatch):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return httperr.FromError(err)
}

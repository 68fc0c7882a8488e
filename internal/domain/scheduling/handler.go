package scheduling

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/httperr"
	"github.com/clinic/clinic/internal/platform/listview"
	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc   *Service
	prefs listview.Preferences
}

func NewHandler(svc *Service, prefs listview.Preferences) *Handler {
	return &Handler{svc: svc, prefs: prefs}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments", h.ListAppointments)
	api.POST("/appointments", h.CreateAppointment)
	api.GET("/appointments/columns", h.AppointmentColumns)
	api.POST("/appointments/columns/:key/toggle", h.ToggleAppointmentColumn)
	api.GET("/appointments/:id", h.GetAppointment)
	api.PUT("/appointments/:id", h.UpdateAppointment)
	api.DELETE("/appointments/:id", h.DeleteAppointment)

	api.GET("/dashboard", h.GetDashboard)
	api.GET("/dashboard/columns", h.DashboardColumns)
	api.POST("/dashboard/columns/:key/toggle", h.ToggleDashboardColumn)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return httperr.BadRequest(err)
	}
	if err := h.svc.CreateAppointment(c.Request().Context(), &a); err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	a, err := h.svc.GetAppointment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return httperr.BadRequest(err)
	}
	a.ID = c.Param("id")
	if err := h.svc.UpdateAppointment(c.Request().Context(), &a); err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	if err := h.svc.DeleteAppointment(c.Request().Context(), c.Param("id")); err != nil {
		return httperr.FromError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	ctx := c.Request().Context()
	cols, err := AppointmentScreen.Columns(ctx, h.prefs, auth.UserIDFromContext(ctx))
	if err != nil {
		return httperr.FromError(err)
	}
	view, err := h.svc.ProjectAppointments(ctx, c.QueryParam("q"), cols)
	if err != nil {
		return httperr.FromError(err)
	}
	p := pagination.FromContext(c)
	return c.JSON(http.StatusOK, pagination.NewResponse(view.Page(p.Limit, p.Offset), view.Total, p).WithLinks(c))
}

func (h *Handler) AppointmentColumns(c echo.Context) error {
	return h.columns(c, AppointmentScreen)
}

func (h *Handler) ToggleAppointmentColumn(c echo.Context) error {
	return h.toggle(c, AppointmentScreen)
}

// -- Dashboard --

func (h *Handler) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	cols, err := DashboardScreen.Columns(ctx, h.prefs, auth.UserIDFromContext(ctx))
	if err != nil {
		return httperr.FromError(err)
	}
	d, err := h.svc.Dashboard(ctx, cols)
	if err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DashboardColumns(c echo.Context) error {
	return h.columns(c, DashboardScreen)
}

func (h *Handler) ToggleDashboardColumn(c echo.Context) error {
	return h.toggle(c, DashboardScreen)
}

func (h *Handler) columns(c echo.Context, screen listview.Screen[AppointmentColumn]) error {
	ctx := c.Request().Context()
	cols, err := screen.Columns(ctx, h.prefs, auth.UserIDFromContext(ctx))
	if err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, cols.All())
}

func (h *Handler) toggle(c echo.Context, screen listview.Screen[AppointmentColumn]) error {
	ctx := c.Request().Context()
	cols, err := screen.Toggle(ctx, h.prefs, auth.UserIDFromContext(ctx), c.Param("key"))
	if err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, cols.All())
}

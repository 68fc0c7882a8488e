package admin

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
	api.GET("/clinics", h.ListClinics)
	api.POST("/clinics", h.CreateClinic)
	api.GET("/clinics/columns", h.ClinicColumns)
	api.POST("/clinics/columns/:key/toggle", h.ToggleClinicColumn)
	api.GET("/clinics/:id", h.GetClinic)
	api.PUT("/clinics/:id", h.UpdateClinic)
	api.DELETE("/clinics/:id", h.DeleteClinic)
}

func (h *Handler) CreateClinic(c echo.Context) error {
	var cl Clinic
	if err := c.Bind(&cl); err != nil {
		return httperr.BadRequest(err)
	}
	if err := h.svc.CreateClinic(c.Request().Context(), &cl); err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusCreated, cl)
}

func (h *Handler) GetClinic(c echo.Context) error {
	cl, err := h.svc.GetClinic(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *Handler) UpdateClinic(c echo.Context) error {
	var cl Clinic
	if err := c.Bind(&cl); err != nil {
		return httperr.BadRequest(err)
	}
	cl.ID = c.Param("id")
	if err := h.svc.UpdateClinic(c.Request().Context(), &cl); err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *Handler) DeleteClinic(c echo.Context) error {
	if err := h.svc.DeleteClinic(c.Request().Context(), c.Param("id")); err != nil {
		return httperr.FromError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListClinics(c echo.Context) error {
	ctx := c.Request().Context()
	cols, err := ClinicScreen.Columns(ctx, h.prefs, auth.UserIDFromContext(ctx))
	if err != nil {
		return httperr.FromError(err)
	}
	view, err := h.svc.ProjectClinics(ctx, c.QueryParam("q"), cols)
	if err != nil {
		return httperr.FromError(err)
	}
	p := pagination.FromContext(c)
	return c.JSON(http.StatusOK, pagination.NewResponse(view.Page(p.Limit, p.Offset), view.Total, p).WithLinks(c))
}

func (h *Handler) ClinicColumns(c echo.Context) error {
	ctx := c.Request().Context()
	cols, err := ClinicScreen.Columns(ctx, h.prefs, auth.UserIDFromContext(ctx))
	if err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, cols.All())
}

func (h *Handler) ToggleClinicColumn(c echo.Context) error {
	ctx := c.Request().Context()
	cols, err := ClinicScreen.Toggle(ctx, h.prefs, auth.UserIDFromContext(ctx), c.Param("key"))
	if err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, cols.All())
}

package identity

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
	api.GET("/patients", h.ListPatients)
	api.POST("/patients", h.CreatePatient)
	api.GET("/patients/columns", h.PatientColumns)
	api.POST("/patients/columns/:key/toggle", h.TogglePatientColumn)
	api.GET("/patients/:id", h.GetPatient)
	api.PUT("/patients/:id", h.UpdatePatient)
	api.DELETE("/patients/:id", h.DeletePatient)

	api.GET("/doctors", h.ListDoctors)
	api.POST("/doctors", h.CreateDoctor)
	api.GET("/doctors/columns", h.DoctorColumns)
	api.POST("/doctors/columns/:key/toggle", h.ToggleDoctorColumn)
	api.GET("/doctors/:id", h.GetDoctor)
	api.PUT("/doctors/:id", h.UpdateDoctor)
	api.DELETE("/doctors/:id", h.DeleteDoctor)
}

// -- Patient Handlers --

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return httperr.BadRequest(err)
	}
	if err := h.svc.CreatePatient(c.Request().Context(), &p); err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.GetPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return httperr.BadRequest(err)
	}
	p.ID = c.Param("id")
	if err := h.svc.UpdatePatient(c.Request().Context(), &p); err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	if err := h.svc.DeletePatient(c.Request().Context(), c.Param("id")); err != nil {
		return httperr.FromError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListPatients(c echo.Context) error {
	ctx := c.Request().Context()
	cols, err := PatientScreen.Columns(ctx, h.prefs, auth.UserIDFromContext(ctx))
	if err != nil {
		return httperr.FromError(err)
	}
	view, err := h.svc.ProjectPatients(ctx, c.QueryParam("q"), cols)
	if err != nil {
		return httperr.FromError(err)
	}
	p := pagination.FromContext(c)
	return c.JSON(http.StatusOK, pagination.NewResponse(view.Page(p.Limit, p.Offset), view.Total, p).WithLinks(c))
}

func (h *Handler) PatientColumns(c echo.Context) error {
	ctx := c.Request().Context()
	cols, err := PatientScreen.Columns(ctx, h.prefs, auth.UserIDFromContext(ctx))
	if err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, cols.All())
}

func (h *Handler) TogglePatientColumn(c echo.Context) error {
	ctx := c.Request().Context()
	cols, err := PatientScreen.Toggle(ctx, h.prefs, auth.UserIDFromContext(ctx), c.Param("key"))
	if err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, cols.All())
}

// -- Doctor Handlers --

func (h *Handler) CreateDoctor(c echo.Context) error {
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return httperr.BadRequest(err)
	}
	if err := h.svc.CreateDoctor(c.Request().Context(), &d); err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	d, err := h.svc.GetDoctor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return httperr.BadRequest(err)
	}
	d.ID = c.Param("id")
	if err := h.svc.UpdateDoctor(c.Request().Context(), &d); err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, d.clone())
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	if err := h.svc.DeleteDoctor(c.Request().Context(), c.Param("id")); err != nil {
		return httperr.FromError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	ctx := c.Request().Context()
	cols, err := DoctorScreen.Columns(ctx, h.prefs, auth.UserIDFromContext(ctx))
	if err != nil {
		return httperr.FromError(err)
	}
	view, err := h.svc.ProjectDoctors(ctx, c.QueryParam("q"), cols)
	if err != nil {
		return httperr.FromError(err)
	}
	p := pagination.FromContext(c)
	return c.JSON(http.StatusOK, pagination.NewResponse(view.Page(p.Limit, p.Offset), view.Total, p).WithLinks(c))
}

func (h *Handler) DoctorColumns(c echo.Context) error {
	ctx := c.Request().Context()
	cols, err := DoctorScreen.Columns(ctx, h.prefs, auth.UserIDFromContext(ctx))
	if err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, cols.All())
}

func (h *Handler) ToggleDoctorColumn(c echo.Context) error {
	ctx := c.Request().Context()
	cols, err := DoctorScreen.Toggle(ctx, h.prefs, auth.UserIDFromContext(ctx), c.Param("key"))
	if err != nil {
		return httperr.FromError(err)
	}
	return c.JSON(http.StatusOK, cols.All())
}

package sandbox

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/platform/httperr"
)

// MaxExtraPatients caps one generate request.
const MaxExtraPatients = 500

type SeedRequest struct {
	ExtraPatients int   `json:"extra_patients"`
	Seed          int64 `json:"seed"`
}

// SeedHandler exposes seeding over HTTP for development servers.
type SeedHandler struct {
	repos  Repos
	logger zerolog.Logger
	now    func() time.Time
	mu     sync.Mutex
}

func NewSeedHandler(repos Repos, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{repos: repos, logger: logger, now: time.Now}
}

func (h *SeedHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/seed", h.handleSeed)
}

func (h *SeedHandler) handleSeed(c echo.Context) error {
	var req SeedRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest(err)
	}
	if req.ExtraPatients < 0 || req.ExtraPatients > MaxExtraPatients {
		return echo.NewHTTPError(http.StatusBadRequest, "extra_patients must be between 0 and 500")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := c.Request().Context()
	res, err := Seed(ctx, h.repos, h.now(), h.logger)
	if err != nil {
		return httperr.FromError(err)
	}

	gen := NewGenerator(req.Seed)
	for i := 0; i < req.ExtraPatients; i++ {
		p := gen.Patient()
		if err := h.repos.Patients.Create(ctx, &p); err != nil {
			return httperr.FromError(err)
		}
		res.Created++
	}
	return c.JSON(http.StatusOK, res)
}

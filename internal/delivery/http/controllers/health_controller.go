package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"voterlink/internal/delivery/http/helpers"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the data of GET /healthz.
// swagger:model HealthResponse
type HealthResponse struct {
	Status        string `json:"status"`
	ReferenceData string `json:"reference_data"`
}

// HealthController reports liveness.
type HealthController struct {
	Logger *slog.Logger
	DB     Pinger
	// LoadError reports the last reference data load error; may be nil.
	LoadError func() error
}

// NewHealthController creates a HealthController.
func NewHealthController(logger *slog.Logger, db Pinger, loadError func() error) *HealthController {
	return &HealthController{Logger: logger, DB: db, LoadError: loadError}
}

// Health godoc
// @Summary Liveness check
// @Description Pings the database. Reference data problems are reported but do not fail the check.
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /healthz [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := c.DB.PingContext(ctx); err != nil {
		c.Logger.ErrorContext(r.Context(), "database ping failed", "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "database unavailable")
		return
	}
	ref := "ok"
	if c.LoadError != nil {
		if err := c.LoadError(); err != nil {
			ref = err.Error()
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok", ReferenceData: ref})
}

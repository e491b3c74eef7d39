package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"voterlink/internal/delivery/http/helpers"
	"voterlink/internal/delivery/http/middleware"
	"voterlink/internal/domain"
)

// MsgReferenceForbidden answers reference data requests from another site.
const MsgReferenceForbidden = "Acceso no autorizado"

// ReloadResponse is the data of a successful reference reload.
// swagger:model ReloadResponse
type ReloadResponse struct {
	Precincts int `json:"precincts"`
}

// ReloadSuccessResponse is the success response envelope for POST /admin/reference/reload (200).
type ReloadSuccessResponse struct {
	Data  ReloadResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ReferenceController serves precinct and candidate data to the ballot form.
type ReferenceController struct {
	Logger *slog.Logger
	Lookup domain.ReferenceLookup
}

// NewReferenceController creates a ReferenceController with the given logger and lookup.
func NewReferenceController(logger *slog.Logger, lookup domain.ReferenceLookup) *ReferenceController {
	return &ReferenceController{
		Logger: logger,
		Lookup: lookup,
	}
}

// Precincts godoc
// @Summary List precincts
// @Description Returns every precinct row. Requests whose Referer names another host are rejected. Empty when the reference data failed to load.
// @Tags reference
// @Produce json
// @Success 200 {array} domain.Precinct
// @Failure 403 {string} string "foreign referer"
// @Router /api/recintos [get]
func (c *ReferenceController) Precincts(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.Lookup.Precincts())
}

// Candidates godoc
// @Summary List candidates for a municipality
// @Tags reference
// @Produce json
// @Param id_municipio query string true "Municipality id"
// @Success 200 {array} domain.Candidate
// @Failure 403 {string} string "foreign referer"
// @Router /api/candidatos [get]
func (c *ReferenceController) Candidates(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id_municipio"))
	helpers.WriteJSON(w, http.StatusOK, c.Lookup.CandidatesFor(id))
}

// Reload godoc
// @Summary Reload reference data
// @Description Re-reads the precinct and candidate CSV files. On failure lookups serve empty results until the next successful reload.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ReloadSuccessResponse "data contains the precinct count"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reference/reload [post]
func (c *ReferenceController) Reload(w http.ResponseWriter, r *http.Request) {
	subject, _ := middleware.SubjectFromContext(r.Context())
	if err := c.Lookup.Reload(r.Context()); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "subject", subject, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	c.Logger.InfoContext(r.Context(), "reference data reloaded", "subject", subject)
	helpers.WriteJSONSuccess(w, http.StatusOK, ReloadResponse{Precincts: len(c.Lookup.Precincts())})
}

package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voterlink/internal/delivery/http/helpers"
	"voterlink/internal/delivery/http/middleware"
	"voterlink/internal/domain"
)

func TestReferenceController_Precincts(t *testing.T) {
	lookup := &fakeLookup{precincts: []domain.Precinct{{MunicipalityID: "20101", PrecinctName: "U.E. Ayacucho"}}}
	c := NewReferenceController(testLogger(), lookup)
	rr := httptest.NewRecorder()

	c.Precincts(rr, httptest.NewRequest(http.MethodGet, "/api/recintos", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "20101", got[0]["id_municipio"])
	assert.Equal(t, "U.E. Ayacucho", got[0]["nombre_recinto"])
}

func TestReferenceController_Candidates(t *testing.T) {
	lookup := &fakeLookup{candidates: map[string][]domain.Candidate{
		"20101": {{ID: "c-1", FullName: "Ana Pérez"}},
	}}
	c := NewReferenceController(testLogger(), lookup)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"known municipality", "/api/candidatos?id_municipio=20101", 1},
		{"unknown municipality", "/api/candidatos?id_municipio=1", 0},
		{"missing id", "/api/candidatos", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			c.Candidates(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, http.StatusOK, rr.Code)
			var got []domain.Candidate
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			assert.NotNil(t, got, "always a JSON array")
			assert.Len(t, got, tt.want)
		})
	}
}

func TestReferenceController_Reload(t *testing.T) {
	tests := []struct {
		name       string
		reloadErr  error
		wantStatus int
		wantCode   string
	}{
		{"success", nil, http.StatusOK, ""},
		{"failure", errBoom, http.StatusInternalServerError, helpers.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &fakeLookup{precincts: make([]domain.Precinct, 3), reloadErr: tt.reloadErr}
			c := NewReferenceController(testLogger(), lookup)
			req := httptest.NewRequest(http.MethodPost, "/admin/reference/reload", nil)
			req = req.WithContext(middleware.SetSubject(req.Context(), "admin"))
			rr := httptest.NewRecorder()

			c.Reload(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, 1, lookup.reloads)
			if tt.wantCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			var envelope ReloadSuccessResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			assert.Nil(t, envelope.Error)
			assert.Equal(t, 3, envelope.Data.Precincts)
		})
	}
}

package domain

import (
	"context"
	"io"
)

// Precinct is a polling location row from the reference data.
// swagger:model Precinct
type Precinct struct {
	CountryID        string `json:"id_pais"`
	CountryName      string `json:"nombre_pais"`
	DepartmentID     string `json:"id_departamento"`
	DepartmentName   string `json:"nombre_departamento"`
	ProvinceID       string `json:"id_provincia"`
	ProvinceName     string `json:"nombre_provincia"`
	MunicipalityID   string `json:"id_municipio"`
	MunicipalityName string `json:"nombre_municipio"`
	PrecinctID       string `json:"id_recinto"`
	PrecinctName     string `json:"nombre_recinto"`
	Address          string `json:"direccion"`
	Latitude         string `json:"latitud"`
	Longitude        string `json:"longitud"`
}

// Candidate is a candidate row from the reference data.
// swagger:model Candidate
type Candidate struct {
	ID                    string `json:"id_nombre_completo"`
	FullName              string `json:"nombre_completo"`
	PoliticalOrganization string `json:"organizacion_politica"`
	PoliticalOrgID        string `json:"id_organizacion_politica"`
	OfficeID              string `json:"id_cargo"`
	Office                string `json:"cargo"`
}

// ReferenceLookup serves read-only precinct and candidate data.
// Lookups after a failed load return empty results.
type ReferenceLookup interface {
	Precincts() []Precinct
	CandidatesFor(municipalityID string) []Candidate
	Reload(ctx context.Context) error
	// LoadError returns the error of the last load, if any.
	LoadError() error
}

// PageRenderer renders HTML pages by name.
type PageRenderer interface {
	Render(w io.Writer, page string, data any) error
}

// Package reference serves the precinct and candidate tables loaded from CSV files.
package reference

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"voterlink/internal/domain"
	"voterlink/internal/textnorm"
)

var precinctColumns = []string{
	"id_pais", "nombre_pais",
	"id_departamento", "nombre_departamento",
	"id_provincia", "nombre_provincia",
	"id_municipio", "nombre_municipio",
	"id_recinto", "nombre_recinto",
}

var candidateColumns = []string{
	"id_municipio", "municipio",
	"id_nombre_completo", "nombre_completo",
	"id_organizacion_politica", "organizacion_politica",
	"id_cargo", "cargo",
}

// Config points the lookup at its files.
type Config struct {
	PrecinctsPath  string
	CandidatesPath string
	// Office keeps only candidates running for this office (compared accent- and case-insensitively).
	Office string
}

// place identifies a municipality by folded names.
type place struct {
	department, province, municipality string
}

// matches reports whether a candidate row's place names the same municipality.
// Department and province only count when the candidate row carries them.
func (c place) matches(p place) bool {
	if c.municipality != p.municipality {
		return false
	}
	if c.department != "" && c.department != p.department {
		return false
	}
	return c.province == "" || c.province == p.province
}

type candidateRow struct {
	candidate      domain.Candidate
	municipalityID string
	place          place
}

// snapshot is immutable once published.
type snapshot struct {
	precincts      []domain.Precinct
	placeByID      map[string]place
	candidates     []candidateRow
	candidatesByID map[string][]domain.Candidate
}

// Lookup implements domain.ReferenceLookup. The zero snapshot serves empty results.
type Lookup struct {
	cfg    Config
	logger *slog.Logger

	mu      sync.RWMutex
	snap    *snapshot
	loadErr error
}

// New creates a Lookup. Call Reload to load the files.
func New(cfg Config, logger *slog.Logger) *Lookup {
	return &Lookup{cfg: cfg, logger: logger, snap: &snapshot{}}
}

// Reload reads both files concurrently and swaps the snapshot. On failure the
// previous snapshot is dropped so lookups return empty results, and the error
// is kept for LoadError.
func (l *Lookup) Reload(ctx context.Context) error {
	var precincts, candidates *table
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := readTable(l.cfg.PrecinctsPath, precinctColumns)
		precincts = t
		return err
	})
	g.Go(func() error {
		t, err := readTable(l.cfg.CandidatesPath, candidateColumns)
		candidates = t
		return err
	})
	err := g.Wait()

	snap := &snapshot{}
	if err == nil {
		snap = build(precincts, candidates, textnorm.Fold(l.cfg.Office))
	}

	l.mu.Lock()
	l.snap, l.loadErr = snap, err
	l.mu.Unlock()

	if err != nil {
		l.logger.ErrorContext(ctx, "reference data load failed", "err", err)
		return err
	}
	l.logger.InfoContext(ctx, "reference data loaded",
		"precincts", len(snap.precincts), "candidates", len(snap.candidates))
	return nil
}

func build(precincts, candidates *table, office string) *snapshot {
	snap := &snapshot{
		precincts:      make([]domain.Precinct, 0, len(precincts.rows)),
		placeByID:      make(map[string]place),
		candidatesByID: make(map[string][]domain.Candidate),
	}
	for _, row := range precincts.rows {
		p := domain.Precinct{
			CountryID:        precincts.get(row, "id_pais"),
			CountryName:      precincts.get(row, "nombre_pais"),
			DepartmentID:     precincts.get(row, "id_departamento"),
			DepartmentName:   precincts.get(row, "nombre_departamento"),
			ProvinceID:       precincts.get(row, "id_provincia"),
			ProvinceName:     precincts.get(row, "nombre_provincia"),
			MunicipalityID:   precincts.get(row, "id_municipio"),
			MunicipalityName: precincts.get(row, "nombre_municipio"),
			PrecinctID:       precincts.get(row, "id_recinto"),
			PrecinctName:     precincts.get(row, "nombre_recinto"),
			Address:          precincts.get(row, "direccion"),
			Latitude:         precincts.get(row, "latitud"),
			Longitude:        precincts.get(row, "longitud"),
		}
		snap.precincts = append(snap.precincts, p)
		if _, ok := snap.placeByID[p.MunicipalityID]; !ok && p.MunicipalityID != "" {
			snap.placeByID[p.MunicipalityID] = place{
				department:   textnorm.Fold(p.DepartmentName),
				province:     textnorm.Fold(p.ProvinceName),
				municipality: textnorm.Fold(p.MunicipalityName),
			}
		}
	}

	for _, row := range candidates.rows {
		if office != "" && textnorm.Fold(candidates.get(row, "cargo")) != office {
			continue
		}
		c := candidateRow{
			candidate: domain.Candidate{
				ID:                    candidates.get(row, "id_nombre_completo"),
				FullName:              candidates.get(row, "nombre_completo"),
				PoliticalOrganization: candidates.get(row, "organizacion_politica"),
				PoliticalOrgID:        candidates.get(row, "id_organizacion_politica"),
				OfficeID:              candidates.get(row, "id_cargo"),
				Office:                candidates.get(row, "cargo"),
			},
			municipalityID: candidates.get(row, "id_municipio"),
			place: place{
				department:   textnorm.Fold(candidates.get(row, "departamento")),
				province:     textnorm.Fold(candidates.get(row, "provincia")),
				municipality: textnorm.Fold(candidates.get(row, "municipio")),
			},
		}
		if c.place.municipality == "" {
			continue
		}
		snap.candidates = append(snap.candidates, c)
		if c.municipalityID != "" {
			snap.candidatesByID[c.municipalityID] = append(snap.candidatesByID[c.municipalityID], c.candidate)
		}
	}
	return snap
}

func (l *Lookup) current() *snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}

// Precincts returns every precinct row.
func (l *Lookup) Precincts() []domain.Precinct {
	s := l.current()
	return append([]domain.Precinct{}, s.precincts...)
}

// CandidatesFor returns the candidates for a municipality id. When no candidate
// row carries the id, the municipality is resolved through the precinct table
// and matched by name.
func (l *Lookup) CandidatesFor(municipalityID string) []domain.Candidate {
	out := []domain.Candidate{}
	if municipalityID == "" {
		return out
	}
	s := l.current()
	if byID := s.candidatesByID[municipalityID]; len(byID) > 0 {
		return append(out, byID...)
	}
	p, ok := s.placeByID[municipalityID]
	if !ok {
		return out
	}
	for _, c := range s.candidates {
		if c.place.matches(p) {
			out = append(out, c.candidate)
		}
	}
	return out
}

// LoadError returns the error of the last Reload.
func (l *Lookup) LoadError() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loadErr
}

var _ domain.ReferenceLookup = (*Lookup)(nil)

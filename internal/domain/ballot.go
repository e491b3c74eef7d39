package domain

import (
	"context"
	"time"
)

// Ballot is the one-per-phone-number vote record.
// swagger:model Ballot
type Ballot struct {
	ID               string    `json:"id"`
	PhoneNumber      string    `json:"phone_number"`
	Gender           string    `json:"gender"`
	Country          string    `json:"country"`
	Department       string    `json:"department"`
	Province         string    `json:"province"`
	MunicipalityID   string    `json:"municipality_id"`
	Municipality     string    `json:"municipality"`
	Precinct         string    `json:"precinct"`
	BirthDay         int       `json:"birth_day"`
	BirthMonth       int       `json:"birth_month"`
	BirthYear        int       `json:"birth_year"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	Candidate        string    `json:"candidate"`
	ControlVolunteer string    `json:"control_volunteer"`
	IdentityDocument *int64    `json:"identity_document,omitempty"`
	SubmitterIP      string    `json:"submitter_ip"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// BallotForm is the raw ballot submission as posted by the browser.
// The form tag is the field name on the wire.
type BallotForm struct {
	Gender           string `form:"genero" validate:"required"`
	Country          string `form:"pais" validate:"required"`
	Department       string `form:"departamento" validate:"required"`
	Province         string `form:"provincia" validate:"required"`
	MunicipalityID   string `form:"id_municipio" validate:"required"`
	Municipality     string `form:"municipio_nombre" validate:"required"`
	Precinct         string `form:"recinto" validate:"required"`
	BirthDay         string `form:"dia_nacimiento" validate:"required,number"`
	BirthMonth       string `form:"mes_nacimiento" validate:"required,number"`
	BirthYear        string `form:"anio_nacimiento" validate:"required,number"`
	Candidate        string `form:"candidato" validate:"required"`
	ControlVolunteer string `form:"pregunta3" validate:"required"`
	IdentityDocument string `form:"ci" validate:"omitempty,number"`
	Latitude         string `form:"latitud" validate:"omitempty,latitude"`
	Longitude        string `form:"longitud" validate:"omitempty,longitude"`
}

// BallotRepository stores ballots. Create returns ErrDuplicateVote when the
// phone number already has a ballot, including when a concurrent insert won.
type BallotRepository interface {
	Create(ctx context.Context, b *Ballot) error
	ExistsForPhone(ctx context.Context, phone string) (bool, error)
}

// BallotService runs the link visit and ballot submission flow.
type BallotService interface {
	// VisitLink validates a link token and returns a fresh submission grant.
	VisitLink(ctx context.Context, token string) (*AuthorizationGrant, error)
	// Submit validates form and commits one ballot for the grant's phone number.
	Submit(ctx context.Context, grantID string, form *BallotForm, submitterIP string) (*Ballot, error)
}

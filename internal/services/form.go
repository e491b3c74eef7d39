package services

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"voterlink/internal/domain"
	"voterlink/internal/textnorm"
)

// newFormValidator returns a validator that reports fields by their form name.
func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	return v
}

// isYes reports whether answer is an affirmative answer, ignoring accents and case.
func isYes(answer string) bool {
	switch textnorm.Fold(answer) {
	case "SI", "YES":
		return true
	}
	return false
}

func trimForm(f *domain.BallotForm) {
	for _, p := range []*string{
		&f.Gender, &f.Country, &f.Department, &f.Province, &f.MunicipalityID, &f.Municipality,
		&f.Precinct, &f.BirthDay, &f.BirthMonth, &f.BirthYear, &f.Candidate, &f.ControlVolunteer,
		&f.IdentityDocument, &f.Latitude, &f.Longitude,
	} {
		*p = strings.TrimSpace(*p)
	}
}

// buildBallot validates form and converts it to a Ballot without identity,
// IP or timestamp. Missing required fields are reported before malformed ones.
func buildBallot(v *validator.Validate, form *domain.BallotForm) (*domain.Ballot, error) {
	if form == nil {
		return nil, domain.NewFieldError("form", domain.ErrMissingField)
	}
	f := *form
	trimForm(&f)

	if err := v.Struct(&f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		var invalid *domain.FieldError
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return nil, domain.NewFieldError(fe.Field(), domain.ErrMissingField)
			}
			if invalid == nil {
				invalid = domain.NewFieldError(fe.Field(), domain.ErrInvalidField)
			}
		}
		return nil, invalid
	}

	if isYes(f.ControlVolunteer) && f.IdentityDocument == "" {
		return nil, domain.NewFieldError("ci", domain.ErrMissingConditionalField)
	}

	b := &domain.Ballot{
		Gender:           f.Gender,
		Country:          f.Country,
		Department:       f.Department,
		Province:         f.Province,
		MunicipalityID:   f.MunicipalityID,
		Municipality:     f.Municipality,
		Precinct:         f.Precinct,
		Candidate:        f.Candidate,
		ControlVolunteer: f.ControlVolunteer,
	}
	var err error
	if b.BirthDay, err = intInRange("dia_nacimiento", f.BirthDay, 1, 31); err != nil {
		return nil, err
	}
	if b.BirthMonth, err = intInRange("mes_nacimiento", f.BirthMonth, 1, 12); err != nil {
		return nil, err
	}
	if b.BirthYear, err = intInRange("anio_nacimiento", f.BirthYear, 1900, 9999); err != nil {
		return nil, err
	}
	if f.IdentityDocument != "" {
		ci, err := strconv.ParseInt(f.IdentityDocument, 10, 64)
		if err != nil {
			return nil, domain.NewFieldError("ci", domain.ErrInvalidField)
		}
		b.IdentityDocument = &ci
	}
	if b.Latitude, err = optionalFloat("latitud", f.Latitude); err != nil {
		return nil, err
	}
	if b.Longitude, err = optionalFloat("longitud", f.Longitude); err != nil {
		return nil, err
	}
	return b, nil
}

func intInRange(field, s string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, domain.NewFieldError(field, domain.ErrInvalidField)
	}
	return n, nil
}

func optionalFloat(field, s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, domain.NewFieldError(field, domain.ErrInvalidField)
	}
	return &f, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"voterlink/internal/domain"
)

type ballotRepository struct {
	DB DBTX
}

func NewBallotRepository(db DBTX) domain.BallotRepository {
	return &ballotRepository{DB: db}
}

// Create inserts b, assigning an id when it has none. The unique constraint on
// phone_number is the final arbiter between concurrent submissions.
func (r *ballotRepository) Create(ctx context.Context, b *domain.Ballot) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	query := `
		INSERT INTO ballots (
			id, phone_number, gender, country, department, province,
			municipality_id, municipality, precinct, birth_day, birth_month, birth_year,
			latitude, longitude, candidate, control_volunteer, identity_document,
			submitter_ip, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err := r.DB.ExecContext(ctx, query,
		b.ID, b.PhoneNumber, b.Gender, b.Country, b.Department, b.Province,
		b.MunicipalityID, b.Municipality, b.Precinct, b.BirthDay, b.BirthMonth, b.BirthYear,
		b.Latitude, b.Longitude, b.Candidate, b.ControlVolunteer, b.IdentityDocument,
		b.SubmitterIP, b.SubmittedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ballot for %s: %w", b.PhoneNumber, domain.ErrDuplicateVote)
		}
		return err
	}
	return nil
}

func (r *ballotRepository) ExistsForPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM ballots WHERE phone_number = $1)`, phone).Scan(&exists)
	return exists, err
}

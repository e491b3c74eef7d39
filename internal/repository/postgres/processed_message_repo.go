package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"voterlink/internal/domain"
)

type processedMessageRepository struct {
	DB DBTX
}

func NewProcessedMessageRepository(db DBTX) domain.ProcessedMessageRepository {
	return &processedMessageRepository{DB: db}
}

func (r *processedMessageRepository) Record(ctx context.Context, m *domain.ProcessedMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	query := `
		INSERT INTO processed_messages (id, message_id, phone_number, received_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, m.ID, m.MessageID, m.PhoneNumber, m.ReceivedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("message %s: %w", m.MessageID, domain.ErrDuplicateMessage)
		}
		return err
	}
	return nil
}

func (r *processedMessageRepository) Exists(ctx context.Context, messageID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM processed_messages WHERE message_id = $1)`, messageID).Scan(&exists)
	return exists, err
}

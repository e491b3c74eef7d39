package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"voterlink/internal/domain"
)

func TestAbuseCounterRepository_RecordAttempt(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "phone_number", "attempts", "blocked"}

	tests := []struct {
		name      string
		threshold int
		mock      func(mock sqlmock.Sqlmock)
		want      *domain.AbuseCounter
	}{
		{
			name:      "first attempt",
			threshold: 4,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`(?s)INSERT INTO abuse_counters.*ON CONFLICT \(phone_number\) DO UPDATE.*RETURNING`).
					WithArgs(sqlmock.AnyArg(), "+59170000009", false, 4).
					WillReturnRows(sqlmock.NewRows(cols).AddRow("a-1", "+59170000009", 1, false))
			},
			want: &domain.AbuseCounter{ID: "a-1", PhoneNumber: "+59170000009", Attempts: 1},
		},
		{
			name:      "threshold reached",
			threshold: 4,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO abuse_counters`).
					WithArgs(sqlmock.AnyArg(), "+59170000009", false, 4).
					WillReturnRows(sqlmock.NewRows(cols).AddRow("a-1", "+59170000009", 4, true))
			},
			want: &domain.AbuseCounter{ID: "a-1", PhoneNumber: "+59170000009", Attempts: 4, Blocked: true},
		},
		{
			name:      "threshold of one blocks on insert",
			threshold: 1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO abuse_counters`).
					WithArgs(sqlmock.AnyArg(), "+59170000009", true, 1).
					WillReturnRows(sqlmock.NewRows(cols).AddRow("a-1", "+59170000009", 1, true))
			},
			want: &domain.AbuseCounter{ID: "a-1", PhoneNumber: "+59170000009", Attempts: 1, Blocked: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewAbuseCounterRepository(db).RecordAttempt(ctx, "+59170000009", tt.threshold)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAbuseCounterRepository_GetByPhone_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM abuse_counters`).
		WithArgs("+59170000009").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone_number", "attempts", "blocked"}))

	_, err = NewAbuseCounterRepository(db).GetByPhone(context.Background(), "+59170000009")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

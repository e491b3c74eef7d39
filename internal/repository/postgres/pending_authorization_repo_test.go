package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"voterlink/internal/domain"
)

func TestPendingAuthorizationRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`(?s)INSERT INTO pending_authorizations.*ON CONFLICT \(phone_number\) DO UPDATE`).
					WithArgs(sqlmock.AnyArg(), "+59170000001", "tok-1", issuedAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO pending_authorizations`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewPendingAuthorizationRepository(db)
			err = repo.Upsert(ctx, "+59170000001", "tok-1", issuedAt)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPendingAuthorizationRepository_GetByPhoneAndToken(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{"id", "phone_number", "token", "issued_at"}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.PendingAuthorization
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, phone_number, token, issued_at\s+FROM pending_authorizations\s+WHERE phone_number = \$1 AND token = \$2`).
					WithArgs("+59170000001", "tok-2").
					WillReturnRows(sqlmock.NewRows(cols).AddRow("p-1", "+59170000001", "tok-2", issuedAt))
			},
			want: &domain.PendingAuthorization{ID: "p-1", PhoneNumber: "+59170000001", Token: "tok-2", IssuedAt: issuedAt},
		},
		{
			name: "stale token not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM pending_authorizations`).
					WithArgs("+59170000001", "tok-2").
					WillReturnRows(sqlmock.NewRows(cols))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM pending_authorizations`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewPendingAuthorizationRepository(db)
			got, err := repo.GetByPhoneAndToken(ctx, "+59170000001", "tok-2")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPendingAuthorizationRepository_DeleteByPhone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM pending_authorizations WHERE phone_number = \$1`).
		WithArgs("+59170000001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPendingAuthorizationRepository(db)
	require.NoError(t, repo.DeleteByPhone(context.Background(), "+59170000001"))
	require.NoError(t, mock.ExpectationsWereMet())
}

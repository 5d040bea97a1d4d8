package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var depositRatio = decimal.RequireFromString("0.25")

func expectDepositLock(mock sqlmock.Sqlmock, profileID uuid.UUID, profileType string) {
	mock.ExpectQuery(`(?s)SELECT id, type.+FROM profiles.+WHERE id = \$1.+FOR UPDATE`).
		WithArgs(profileID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type"}).
			AddRow(profileID.String(), profileType))
}

func expectUnpaidTotal(mock sqlmock.Sqlmock, profileID uuid.UUID, total string) {
	mock.ExpectQuery(`(?s)SELECT COALESCE\(SUM\(j\.price\), 0\).+WHERE c\.client_id = \$1.+AND c\.status <> 'terminated'.+AND NOT COALESCE\(j\.paid, FALSE\)`).
		WithArgs(profileID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(total))
}

func TestDeposit_WithinLimit(t *testing.T) {
	database, mock := newTestDB(t)
	repo := NewProfileRepository(database)

	profileID := uuid.New()
	amount := decimal.RequireFromString("49")

	mock.ExpectBegin()
	expectDepositLock(mock, profileID, "client")
	expectUnpaidTotal(mock, profileID, "200")
	mock.ExpectExec(`UPDATE profiles SET balance = balance \+ \$1 WHERE id = \$2`).
		WithArgs(amount, profileID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Deposit(context.Background(), profileID, amount, depositRatio)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeposit_AboveLimit(t *testing.T) {
	database, mock := newTestDB(t)
	repo := NewProfileRepository(database)

	profileID := uuid.New()

	mock.ExpectBegin()
	expectDepositLock(mock, profileID, "client")
	expectUnpaidTotal(mock, profileID, "200")
	mock.ExpectRollback()

	err := repo.Deposit(context.Background(), profileID, decimal.RequireFromString("51"), depositRatio)

	assert.ErrorIs(t, err, ErrDepositExceedsLimit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeposit_NoUnpaidJobsRejectsAnyAmount(t *testing.T) {
	database, mock := newTestDB(t)
	repo := NewProfileRepository(database)

	profileID := uuid.New()

	mock.ExpectBegin()
	expectDepositLock(mock, profileID, "client")
	expectUnpaidTotal(mock, profileID, "0")
	mock.ExpectRollback()

	err := repo.Deposit(context.Background(), profileID, decimal.RequireFromString("0.01"), depositRatio)

	assert.ErrorIs(t, err, ErrDepositExceedsLimit)
}

func TestDeposit_ContractorRejected(t *testing.T) {
	database, mock := newTestDB(t)
	repo := NewProfileRepository(database)

	profileID := uuid.New()

	mock.ExpectBegin()
	expectDepositLock(mock, profileID, "contractor")
	mock.ExpectRollback()

	err := repo.Deposit(context.Background(), profileID, decimal.RequireFromString("10"), depositRatio)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetByID(t *testing.T) {
	database, mock := newTestDB(t)
	repo := NewProfileRepository(database)

	profileID := uuid.New()
	createdAt := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)SELECT id, first_name, last_name, profession, balance, type, created_at.+FROM profiles.+WHERE id = \$1`).
		WithArgs(profileID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "profession", "balance", "type", "created_at"}).
			AddRow(profileID.String(), "Harry", "Potter", "Wizard", "1150", "client", createdAt))

	profile, err := repo.GetByID(context.Background(), profileID)

	require.NoError(t, err)
	assert.Equal(t, "Harry Potter", profile.FullName())
	assert.True(t, profile.Balance.Equal(decimal.RequireFromString("1150")))
}

func TestGetByID_Missing(t *testing.T) {
	database, mock := newTestDB(t)
	repo := NewProfileRepository(database)

	profileID := uuid.New()

	mock.ExpectQuery(`(?s)FROM profiles`).
		WithArgs(profileID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "profession", "balance", "type", "created_at"}))

	_, err := repo.GetByID(context.Background(), profileID)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

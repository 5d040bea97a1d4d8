package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/krasniqitringe/deel-hometask/internal/model"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var row struct {
		ID         uuid.UUID
		FirstName  string
		LastName   string
		Profession string
		Balance    decimal.Decimal
		Type       string
		CreatedAt  time.Time
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, first_name, last_name, profession, balance, type, created_at
		FROM profiles
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	return &model.Profile{
		ID:         row.ID,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		Profession: row.Profession,
		Balance:    row.Balance,
		Type:       model.ProfileType(row.Type),
		CreatedAt:  row.CreatedAt,
	}, nil
}

// Deposit credits a client's balance after enforcing the deposit cap:
// the amount may not exceed limitRatio times the client's outstanding
// unpaid job total. The profile row stays locked while the total is
// computed so concurrent deposits and payments serialize.
//
// A missing profile, or one that is not a client, reports
// gorm.ErrRecordNotFound.
func (r *ProfileRepository) Deposit(ctx context.Context, profileID uuid.UUID, amount, limitRatio decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile struct {
			ID   uuid.UUID
			Type string
		}
		err := tx.Raw(`
			SELECT id, type
			FROM profiles
			WHERE id = ?
			FOR UPDATE
		`, profileID).Scan(&profile).Error
		if err != nil {
			return err
		}
		if profile.ID == uuid.Nil || profile.Type != string(model.ProfileTypeClient) {
			return gorm.ErrRecordNotFound
		}

		var totalUnpaid decimal.Decimal
		err = tx.Raw(`
			SELECT COALESCE(SUM(j.price), 0)
			FROM jobs j
			JOIN contracts c ON c.id = j.contract_id
			WHERE c.client_id = ?
				AND c.status <> 'terminated'
				AND NOT COALESCE(j.paid, FALSE)
		`, profileID).Scan(&totalUnpaid).Error
		if err != nil {
			return err
		}

		maxDeposit := totalUnpaid.Mul(limitRatio)
		if amount.GreaterThan(maxDeposit) {
			return ErrDepositExceedsLimit
		}

		return tx.Exec(`
			UPDATE profiles SET balance = balance + ? WHERE id = ?
		`, amount, profileID).Error
	})
}

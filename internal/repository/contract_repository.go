package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/krasniqitringe/deel-hometask/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

type contractRow struct {
	ID           uuid.UUID
	ClientID     uuid.UUID
	ContractorID uuid.UUID
	Terms        string
	Status       string
	CreatedAt    time.Time
}

// GetForProfile returns the contract only when the profile is a party
// to it, either side. Anything else reports not found.
func (r *ContractRepository) GetForProfile(ctx context.Context, contractID, profileID uuid.UUID) (*model.Contract, error) {
	var row contractRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, contractor_id, terms, status, created_at
		FROM contracts
		WHERE id = ?
			AND (client_id = ? OR contractor_id = ?)
		LIMIT 1
	`, contractID, profileID, profileID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	contract := row.toModel()
	return &contract, nil
}

// ListForProfile returns the profile's non-terminated contracts.
func (r *ContractRepository) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]model.Contract, error) {
	var rows []contractRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, contractor_id, terms, status, created_at
		FROM contracts
		WHERE (client_id = ? OR contractor_id = ?)
			AND status <> 'terminated'
	`, profileID, profileID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	contracts := make([]model.Contract, 0, len(rows))
	for _, row := range rows {
		contracts = append(contracts, row.toModel())
	}
	return contracts, nil
}

func (row contractRow) toModel() model.Contract {
	return model.Contract{
		ID:           row.ID,
		ClientID:     row.ClientID,
		ContractorID: row.ContractorID,
		Terms:        row.Terms,
		Status:       model.ContractStatus(row.Status),
		CreatedAt:    row.CreatedAt,
	}
}

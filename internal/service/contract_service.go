package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/krasniqitringe/deel-hometask/internal/model"
)

type ContractStore interface {
	GetForProfile(ctx context.Context, contractID, profileID uuid.UUID) (*model.Contract, error)
	ListForProfile(ctx context.Context, profileID uuid.UUID) ([]model.Contract, error)
}

// ContractService exposes the read side of the API: contracts scoped
// to the calling profile and the unpaid jobs under them.
type ContractService struct {
	contracts ContractStore
	jobs      JobStore
}

func NewContractService(contracts ContractStore, jobs JobStore) *ContractService {
	return &ContractService{contracts: contracts, jobs: jobs}
}

func (s *ContractService) GetContract(ctx context.Context, profileID, contractID uuid.UUID) (*model.Contract, error) {
	contract, err := s.contracts.GetForProfile(ctx, contractID, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (s *ContractService) ListContracts(ctx context.Context, profileID uuid.UUID) ([]model.Contract, error) {
	return s.contracts.ListForProfile(ctx, profileID)
}

func (s *ContractService) ListUnpaidJobs(ctx context.Context, profileID uuid.UUID) ([]model.Job, error) {
	return s.jobs.ListUnpaidForProfile(ctx, profileID)
}

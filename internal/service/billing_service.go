package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/krasniqitringe/deel-hometask/internal/config"
	"github.com/krasniqitringe/deel-hometask/internal/model"
	"github.com/krasniqitringe/deel-hometask/internal/repository"
)

type JobStore interface {
	ListUnpaidForProfile(ctx context.Context, profileID uuid.UUID) ([]model.Job, error)
	PayJob(ctx context.Context, jobID, clientProfileID uuid.UUID, paidAt time.Time) error
	GetReceipt(ctx context.Context, jobID, profileID uuid.UUID) (*model.PaymentReceipt, error)
}

type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	Deposit(ctx context.Context, profileID uuid.UUID, amount, limitRatio decimal.Decimal) error
}

type ReceiptGenerator interface {
	Generate(receipt model.PaymentReceipt) ([]byte, error)
}

// BillingService owns the money movement: paying a job out of a
// client's balance and depositing funds under the 25% policy.
type BillingService struct {
	jobs     JobStore
	profiles ProfileStore
	receipts ReceiptGenerator
	cfg      *config.Config
	now      func() time.Time
}

func NewBillingService(jobs JobStore, profiles ProfileStore, receipts ReceiptGenerator, cfg *config.Config) *BillingService {
	return &BillingService{
		jobs:     jobs,
		profiles: profiles,
		receipts: receipts,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// PayJob pays the job on behalf of the caller. Only the contract's
// client may pay; a job the caller does not own reports ErrNotFound.
func (s *BillingService) PayJob(ctx context.Context, jobID uuid.UUID, caller model.Profile) error {
	err := s.jobs.PayJob(ctx, jobID, caller.ID, s.now())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrJobAlreadyPaid):
		return ErrAlreadyPaid
	case errors.Is(err, repository.ErrInsufficientFunds):
		return ErrInsufficientFunds
	default:
		return err
	}
}

// Deposit credits amount onto the client's balance. The store enforces
// the cap against the client's outstanding unpaid total.
func (s *BillingService) Deposit(ctx context.Context, profileID uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be a positive number", ErrInvalidInput)
	}

	err := s.profiles.Deposit(ctx, profileID, amount, s.cfg.Billing.DepositLimitRatio)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDepositExceedsLimit):
		return ErrDepositExceedsLimit
	default:
		return err
	}
}

type ReceiptResult struct {
	FileName string
	Content  []byte
}

// Receipt renders a payment receipt pdf for a paid job the caller is a
// party to.
func (s *BillingService) Receipt(ctx context.Context, jobID uuid.UUID, caller model.Profile) (*ReceiptResult, error) {
	receipt, err := s.jobs.GetReceipt(ctx, jobID, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !receipt.Job.Paid {
		return nil, fmt.Errorf("%w: job is not paid yet", ErrInvalidInput)
	}

	content, err := s.receipts.Generate(*receipt)
	if err != nil {
		return nil, err
	}

	return &ReceiptResult{
		FileName: fmt.Sprintf("receipt-%s.pdf", receipt.Job.ID),
		Content:  content,
	}, nil
}

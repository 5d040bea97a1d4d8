package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Job struct {
	ID          uuid.UUID       `json:"id"`
	ContractID  uuid.UUID       `json:"contract_id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Paid        bool            `json:"paid"`
	PaymentDate *time.Time      `json:"payment_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PaymentReceipt bundles a paid job with its contract and both parties
// for receipt rendering.
type PaymentReceipt struct {
	Job        Job
	Contract   Contract
	Client     Profile
	Contractor Profile
}

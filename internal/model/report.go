package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfessionEarnings is one row of the best-profession aggregate:
// total paid-job earnings attributed to a contractor profession.
type ProfessionEarnings struct {
	Profession  string          `json:"profession"`
	TotalEarned decimal.Decimal `json:"total_earned"`
}

// ClientSpending is one row of the best-clients aggregate.
type ClientSpending struct {
	ID        uuid.UUID       `json:"id"`
	FullName  string          `json:"full_name"`
	TotalPaid decimal.Decimal `json:"total_paid"`
}

// BestClientsReport is the export form of the best-clients aggregate,
// carrying the requested window alongside the rows.
type BestClientsReport struct {
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Limit       int
	Clients     []ClientSpending
}

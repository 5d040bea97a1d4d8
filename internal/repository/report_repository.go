package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/krasniqitringe/deel-hometask/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// BestProfession returns the contractor profession with the largest
// paid-job earnings inside the window, or nil when no paid job
// qualifies. A nil bound leaves that side of the window open.
func (r *ReportRepository) BestProfession(ctx context.Context, start, end *time.Time) (*model.ProfessionEarnings, error) {
	baseQuery := `
		SELECT
			contractor.profession,
			SUM(j.price) AS total_earned
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles contractor ON contractor.id = c.contractor_id
		WHERE COALESCE(j.paid, FALSE)
	`
	args := []interface{}{}
	baseQuery, args = appendPaymentWindow(baseQuery, args, start, end)
	baseQuery += `
		GROUP BY contractor.profession
		ORDER BY total_earned DESC
		LIMIT 1
	`

	var row struct {
		Profession  string
		TotalEarned decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.Profession == "" {
		return nil, nil
	}
	return &model.ProfessionEarnings{
		Profession:  row.Profession,
		TotalEarned: row.TotalEarned,
	}, nil
}

// BestClients returns the top spending clients over paid jobs inside
// the window, descending by total paid, at most limit rows.
func (r *ReportRepository) BestClients(ctx context.Context, start, end *time.Time, limit int) ([]model.ClientSpending, error) {
	baseQuery := `
		SELECT
			client.id,
			client.first_name || ' ' || client.last_name AS full_name,
			SUM(j.price) AS total_paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles client ON client.id = c.client_id
		WHERE COALESCE(j.paid, FALSE)
			AND client.type = 'client'
	`
	args := []interface{}{}
	baseQuery, args = appendPaymentWindow(baseQuery, args, start, end)
	baseQuery += `
		GROUP BY client.id, full_name
		ORDER BY total_paid DESC
		LIMIT ?
	`
	args = append(args, limit)

	var rows []struct {
		ID        uuid.UUID
		FullName  string
		TotalPaid decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	clients := make([]model.ClientSpending, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, model.ClientSpending{
			ID:        row.ID,
			FullName:  row.FullName,
			TotalPaid: row.TotalPaid,
		})
	}
	return clients, nil
}

func appendPaymentWindow(baseQuery string, args []interface{}, start, end *time.Time) (string, []interface{}) {
	if start != nil {
		baseQuery += " AND j.payment_date >= ?"
		args = append(args, *start)
	}
	if end != nil {
		baseQuery += " AND j.payment_date <= ?"
		args = append(args, *end)
	}
	return baseQuery, args
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/krasniqitringe/deel-hometask/internal/model"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

type jobRow struct {
	ID          uuid.UUID
	ContractID  uuid.UUID
	Description string
	Price       decimal.Decimal
	Paid        *bool
	PaymentDate *time.Time
	CreatedAt   time.Time
}

// ListUnpaidForProfile returns unpaid jobs under the profile's
// non-terminated contracts, either side of the contract.
func (r *JobRepository) ListUnpaidForProfile(ctx context.Context, profileID uuid.UUID) ([]model.Job, error) {
	var rows []jobRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			j.id,
			j.contract_id,
			j.description,
			j.price,
			j.paid,
			j.payment_date,
			j.created_at
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE (c.client_id = ? OR c.contractor_id = ?)
			AND c.status <> 'terminated'
			AND NOT COALESCE(j.paid, FALSE)
	`, profileID, profileID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]model.Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, row.toModel())
	}
	return jobs, nil
}

// PayJob moves a job's price from the client's balance to the
// contractor's and marks the job paid, all inside one transaction.
// The job row and both profile rows stay locked until commit so a
// concurrent payment of the same job serializes behind this one.
//
// The lookup is scoped to the caller as the contract's client; a job
// owned by someone else reports gorm.ErrRecordNotFound.
func (r *JobRepository) PayJob(ctx context.Context, jobID, clientProfileID uuid.UUID, paidAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job struct {
			ID           uuid.UUID
			Price        decimal.Decimal
			Paid         *bool
			ClientID     uuid.UUID
			ContractorID uuid.UUID
		}
		err := tx.Raw(`
			SELECT
				j.id,
				j.price,
				j.paid,
				c.client_id,
				c.contractor_id
			FROM jobs j
			JOIN contracts c ON c.id = j.contract_id
			WHERE j.id = ?
			FOR UPDATE OF j
		`, jobID).Scan(&job).Error
		if err != nil {
			return err
		}
		if job.ID == uuid.Nil || job.ClientID != clientProfileID {
			return gorm.ErrRecordNotFound
		}
		if job.Paid != nil && *job.Paid {
			return ErrJobAlreadyPaid
		}

		// Lock both balances; ordering by id keeps concurrent payments
		// between the same pair deadlock-free.
		var parties []struct {
			ID      uuid.UUID
			Balance decimal.Decimal
		}
		err = tx.Raw(`
			SELECT id, balance
			FROM profiles
			WHERE id IN (?, ?)
			ORDER BY id
			FOR UPDATE
		`, job.ClientID, job.ContractorID).Scan(&parties).Error
		if err != nil {
			return err
		}
		if len(parties) != 2 {
			return gorm.ErrRecordNotFound
		}

		clientBalance := parties[0].Balance
		if parties[1].ID == job.ClientID {
			clientBalance = parties[1].Balance
		}
		if clientBalance.LessThan(job.Price) {
			return ErrInsufficientFunds
		}

		if err := tx.Exec(`
			UPDATE profiles SET balance = balance - ? WHERE id = ?
		`, job.Price, job.ClientID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`
			UPDATE profiles SET balance = balance + ? WHERE id = ?
		`, job.Price, job.ContractorID).Error; err != nil {
			return err
		}
		return tx.Exec(`
			UPDATE jobs SET paid = TRUE, payment_date = ? WHERE id = ?
		`, paidAt, jobID).Error
	})
}

// GetReceipt loads a paid job with its contract and both parties. The
// lookup is scoped to the contract's parties.
func (r *JobRepository) GetReceipt(ctx context.Context, jobID, profileID uuid.UUID) (*model.PaymentReceipt, error) {
	var row struct {
		ID          uuid.UUID
		ContractID  uuid.UUID
		Description string
		Price       decimal.Decimal
		Paid        *bool
		PaymentDate *time.Time
		CreatedAt   time.Time

		ContractClientID     uuid.UUID
		ContractContractorID uuid.UUID
		ContractTerms        string
		ContractStatus       string
		ContractCreatedAt    time.Time

		ClientFirstName  string
		ClientLastName   string
		ClientProfession string

		ContractorFirstName  string
		ContractorLastName   string
		ContractorProfession string
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			j.id,
			j.contract_id,
			j.description,
			j.price,
			j.paid,
			j.payment_date,
			j.created_at,
			c.client_id AS contract_client_id,
			c.contractor_id AS contract_contractor_id,
			c.terms AS contract_terms,
			c.status AS contract_status,
			c.created_at AS contract_created_at,
			client.first_name AS client_first_name,
			client.last_name AS client_last_name,
			client.profession AS client_profession,
			contractor.first_name AS contractor_first_name,
			contractor.last_name AS contractor_last_name,
			contractor.profession AS contractor_profession
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles client ON client.id = c.client_id
		JOIN profiles contractor ON contractor.id = c.contractor_id
		WHERE j.id = ?
			AND (c.client_id = ? OR c.contractor_id = ?)
		LIMIT 1
	`, jobID, profileID, profileID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	return &model.PaymentReceipt{
		Job: model.Job{
			ID:          row.ID,
			ContractID:  row.ContractID,
			Description: row.Description,
			Price:       row.Price,
			Paid:        row.Paid != nil && *row.Paid,
			PaymentDate: row.PaymentDate,
			CreatedAt:   row.CreatedAt,
		},
		Contract: model.Contract{
			ID:           row.ContractID,
			ClientID:     row.ContractClientID,
			ContractorID: row.ContractContractorID,
			Terms:        row.ContractTerms,
			Status:       model.ContractStatus(row.ContractStatus),
			CreatedAt:    row.ContractCreatedAt,
		},
		Client: model.Profile{
			ID:         row.ContractClientID,
			FirstName:  row.ClientFirstName,
			LastName:   row.ClientLastName,
			Profession: row.ClientProfession,
			Type:       model.ProfileTypeClient,
		},
		Contractor: model.Profile{
			ID:         row.ContractContractorID,
			FirstName:  row.ContractorFirstName,
			LastName:   row.ContractorLastName,
			Profession: row.ContractorProfession,
			Type:       model.ProfileTypeContractor,
		},
	}, nil
}

func (row jobRow) toModel() model.Job {
	return model.Job{
		ID:          row.ID,
		ContractID:  row.ContractID,
		Description: row.Description,
		Price:       row.Price,
		Paid:        row.Paid != nil && *row.Paid,
		PaymentDate: row.PaymentDate,
		CreatedAt:   row.CreatedAt,
	}
}

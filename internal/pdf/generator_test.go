package pdf

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krasniqitringe/deel-hometask/internal/model"
)

func TestGenerate_PaymentReceipt(t *testing.T) {
	paidAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	receipt := model.PaymentReceipt{
		Job: model.Job{
			ID:          uuid.New(),
			Description: "work",
			Price:       decimal.RequireFromString("60"),
			Paid:        true,
			PaymentDate: &paidAt,
		},
		Contract: model.Contract{ID: uuid.New(), Status: model.ContractStatusInProgress},
		Client: model.Profile{
			ID:        uuid.New(),
			FirstName: "Harry",
			LastName:  "Potter",
			Type:      model.ProfileTypeClient,
		},
		Contractor: model.Profile{
			ID:         uuid.New(),
			FirstName:  "John",
			LastName:   "Lenon",
			Profession: "Musician",
			Type:       model.ProfileTypeContractor,
		},
	}

	content, err := NewGenerator().Generate(receipt)

	require.NoError(t, err)
	require.NotEmpty(t, content)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestGenerate_EmptyFieldsFallBack(t *testing.T) {
	receipt := model.PaymentReceipt{
		Job: model.Job{ID: uuid.New(), Price: decimal.RequireFromString("1")},
	}

	content, err := NewGenerator().Generate(receipt)

	require.NoError(t, err)
	assert.NotEmpty(t, content)
}

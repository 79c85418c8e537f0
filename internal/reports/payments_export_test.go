package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"estate-service/internal/models"
)

func TestPaymentsWorkbook(t *testing.T) {
	reference := "TRX-4471"
	payments := []models.Payment{
		{
			PaymentType:     "rent",
			Amount:          45000,
			PaymentDate:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			PaymentMethod:   "bank_transfer",
			ReferenceNumber: &reference,
			Status:          models.PaymentCompleted,
			RentAgreement: &models.RentAgreement{
				Property: &models.Property{Title: "Wapda Town House"},
				Tenant:   &models.Tenant{FullName: "Usman Tariq"},
			},
		},
		{
			PaymentType:   "security_deposit",
			Amount:        90000,
			PaymentDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			PaymentMethod: "cash",
			Status:        models.PaymentPending,
		},
	}

	buf, err := PaymentsWorkbook(payments)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Payments"}, f.GetSheetList())

	rows, err := f.GetRows("Payments")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Date", "Property", "Tenant", "Type", "Method", "Reference", "Amount", "Status"}, rows[0])
	assert.Equal(t, []string{"2026-02-01", "Wapda Town House", "Usman Tariq", "rent", "bank_transfer", "TRX-4471", "Rs. 45,000", "completed"}, rows[1])

	// Missing agreement chain renders blank property/tenant columns.
	assert.Equal(t, "2026-01-15", rows[2][0])
	assert.Equal(t, "", rows[2][1])
	assert.Equal(t, "Rs. 90,000", rows[2][6])
}

func TestPaymentsWorkbook_Empty(t *testing.T) {
	buf, err := PaymentsWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payments")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

// Package reports builds downloadable exports of ledger data.
package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"estate-service/internal/currency"
	"estate-service/internal/models"
)

const paymentsSheet = "Payments"

// PaymentsWorkbook renders the payment ledger as an xlsx workbook. Rows keep
// the order they are passed in (the ledger lists newest first).
func PaymentsWorkbook(payments []models.Payment) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(paymentsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"Date", "Property", "Tenant", "Type", "Method", "Reference", "Amount", "Status"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(paymentsSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(paymentsSheet, "A1", "H1", headerStyle)
	}

	for i, payment := range payments {
		row := i + 2
		propertyTitle := ""
		tenantName := ""
		if payment.RentAgreement != nil {
			if payment.RentAgreement.Property != nil {
				propertyTitle = payment.RentAgreement.Property.Title
			}
			if payment.RentAgreement.Tenant != nil {
				tenantName = payment.RentAgreement.Tenant.FullName
			}
		}
		reference := ""
		if payment.ReferenceNumber != nil {
			reference = *payment.ReferenceNumber
		}

		values := []interface{}{
			payment.PaymentDate.Format(models.DateOnly),
			propertyTitle,
			tenantName,
			payment.PaymentType,
			payment.PaymentMethod,
			reference,
			currency.FormatPKR(payment.Amount),
			payment.Status,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(paymentsSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	for col, width := range map[string]float64{"A": 12, "B": 28, "C": 22, "D": 14, "E": 14, "F": 18, "G": 16, "H": 12} {
		f.SetColWidth(paymentsSheet, col, col, width)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mwangaza/dukahub-api/internal/domain/enum"
	"github.com/xuri/excelize/v2"
)

// ReportService builds downloadable report files
type ReportService struct {
	balanceService *BalanceService
}

// NewReportService creates a new report service
func NewReportService(balanceService *BalanceService) *ReportService {
	return &ReportService{balanceService: balanceService}
}

const statementSheet = "Statement"

// ExportStatement builds an entity's statement as an Excel workbook. The
// returned filename is safe to use in a Content-Disposition header.
func (s *ReportService) ExportStatement(ctx context.Context, entityID uuid.UUID, entityType enum.EntityType, startDate, endDate *time.Time) (*excelize.File, string, error) {
	statement, err := s.balanceService.GetStatement(ctx, entityID, entityType, startDate, endDate)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", statementSheet)

	f.SetCellValue(statementSheet, "A1", "Statement for")
	f.SetCellValue(statementSheet, "B1", statement.EntityName)
	f.SetCellValue(statementSheet, "A2", "Generated")
	f.SetCellValue(statementSheet, "B2", time.Now().Format("2006-01-02 15:04"))

	// Transaction rows
	f.SetCellValue(statementSheet, "A4", "Date")
	f.SetCellValue(statementSheet, "B4", "Type")
	f.SetCellValue(statementSheet, "C4", "Reference")
	f.SetCellValue(statementSheet, "D4", "Method")
	f.SetCellValue(statementSheet, "E4", "Amount")
	f.SetCellValue(statementSheet, "F4", "Paid")
	f.SetCellValue(statementSheet, "G4", "Due")

	row := 5
	for _, line := range statement.Lines {
		f.SetCellValue(statementSheet, "A"+fmt.Sprint(row), line.Date.Format("2006-01-02"))
		f.SetCellValue(statementSheet, "B"+fmt.Sprint(row), line.Type)
		f.SetCellValue(statementSheet, "C"+fmt.Sprint(row), line.Reference)
		f.SetCellValue(statementSheet, "D"+fmt.Sprint(row), line.PaymentMethod.String())
		f.SetCellValue(statementSheet, "E"+fmt.Sprint(row), line.Amount)
		if line.Type == "bill" {
			f.SetCellValue(statementSheet, "F"+fmt.Sprint(row), line.Paid)
			f.SetCellValue(statementSheet, "G"+fmt.Sprint(row), line.Due)
		}
		row++
	}

	// Summary block
	row++
	f.SetCellValue(statementSheet, "A"+fmt.Sprint(row), "Opening Balance")
	f.SetCellValue(statementSheet, "B"+fmt.Sprint(row), statement.Summary.OpeningBalance)
	row++
	f.SetCellValue(statementSheet, "A"+fmt.Sprint(row), "Total Billed")
	f.SetCellValue(statementSheet, "B"+fmt.Sprint(row), statement.Summary.TotalBilled)
	row++
	f.SetCellValue(statementSheet, "A"+fmt.Sprint(row), "Total Paid")
	f.SetCellValue(statementSheet, "B"+fmt.Sprint(row), statement.Summary.TotalPaid)
	row++
	f.SetCellValue(statementSheet, "A"+fmt.Sprint(row), "Outstanding Due")
	f.SetCellValue(statementSheet, "B"+fmt.Sprint(row), statement.Summary.OutstandingDue)

	filename := fmt.Sprintf("statement-%s-%s.xlsx", statement.EntityType, time.Now().Format("20060102"))
	return f, filename, nil
}

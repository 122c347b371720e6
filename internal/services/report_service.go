package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/atikur-24/daily-fit-server/internal/repositories"
)

const paymentsSheet = "Payments"

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportPayments renders every payment record into an xlsx workbook, newest first
func (s *reportService) ExportPayments(ctx context.Context) ([]byte, error) {
	payments, err := s.repo.Payment().List(ctx, repositories.PaymentFilters{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", paymentsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Payment ID", "Email", "Amount", "Transaction ID", "Classes", "Date"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(paymentsSheet, cell, header)
	}

	for i, p := range payments {
		row := i + 2
		amount, _ := p.Amount.Float64()
		f.SetCellValue(paymentsSheet, fmt.Sprintf("A%d", row), p.ID)
		f.SetCellValue(paymentsSheet, fmt.Sprintf("B%d", row), p.Email)
		f.SetCellValue(paymentsSheet, fmt.Sprintf("C%d", row), amount)
		f.SetCellValue(paymentsSheet, fmt.Sprintf("D%d", row), p.TransactionID)
		f.SetCellValue(paymentsSheet, fmt.Sprintf("E%d", row), strings.Join(p.ClassRefs, ", "))
		f.SetCellValue(paymentsSheet, fmt.Sprintf("F%d", row), p.Date.Format("2006-01-02 15:04:05"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Payments exported", "rows", len(payments))
	return buf.Bytes(), nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/krasniqitringe/deel-hometask/internal/config"
	"github.com/krasniqitringe/deel-hometask/internal/model"
)

type ReportStore interface {
	BestProfession(ctx context.Context, start, end *time.Time) (*model.ProfessionEarnings, error)
	BestClients(ctx context.Context, start, end *time.Time, limit int) ([]model.ClientSpending, error)
}

type ExcelGenerator interface {
	Generate(report model.BestClientsReport) ([]byte, error)
}

// ReportService computes the administrative aggregates over paid jobs.
type ReportService struct {
	reports ReportStore
	excel   ExcelGenerator
	cfg     *config.Config
}

func NewReportService(reports ReportStore, excel ExcelGenerator, cfg *config.Config) *ReportService {
	return &ReportService{reports: reports, excel: excel, cfg: cfg}
}

// BestProfession returns the top-earning contractor profession, or nil
// when no paid job falls inside the window.
func (s *ReportService) BestProfession(ctx context.Context, start, end *time.Time) (*model.ProfessionEarnings, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	return s.reports.BestProfession(ctx, start, end)
}

// BestClients returns the top spending clients, at most limit rows.
// A non-positive limit falls back to the configured default.
func (s *ReportService) BestClients(ctx context.Context, start, end *time.Time, limit int) ([]model.ClientSpending, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.cfg.Billing.BestClientsLimit
	}
	return s.reports.BestClients(ctx, start, end, limit)
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// ExportBestClients renders the best-clients aggregate as a workbook.
func (s *ReportService) ExportBestClients(ctx context.Context, start, end *time.Time, limit int) (*ExportResult, error) {
	if limit <= 0 {
		limit = s.cfg.Billing.BestClientsLimit
	}
	clients, err := s.BestClients(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}

	report := model.BestClientsReport{
		PeriodStart: start,
		PeriodEnd:   end,
		Limit:       limit,
		Clients:     clients,
	}
	content, err := s.excel.Generate(report)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		FileName: buildExportFileName(start, end),
		Content:  content,
	}, nil
}

func validateWindow(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return fmt.Errorf("%w: start must be before or equal to end", ErrInvalidInput)
	}
	return nil
}

func buildExportFileName(start, end *time.Time) string {
	period := "all-time"
	if start != nil && end != nil {
		period = fmt.Sprintf("%s-%s", start.Format("20060102"), end.Format("20060102"))
	}
	return fmt.Sprintf("best-clients-%s.xlsx", period)
}

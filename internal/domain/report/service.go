package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// ExportMetrics writes every daily metrics row of the period to a workbook
	ExportMetrics(ctx context.Context, req ReportRequest) (File, error)

	// ExportPayroll writes the payroll summary of the period to a workbook
	ExportPayroll(ctx context.Context, req ReportRequest) (File, error)
}

package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/finops-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// ExportMetrics handles GET /reports/metrics.xlsx
	ExportMetrics(w http.ResponseWriter, r *http.Request)
	// ExportPayroll handles GET /reports/payroll.xlsx
	ExportPayroll(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func (h *reportHandlerImpl) ExportMetrics(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.ExportMetrics(r.Context(), reportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeFile(w, file)
}

func (h *reportHandlerImpl) ExportPayroll(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.ExportPayroll(r.Context(), reportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeFile(w, file)
}

func reportRequest(r *http.Request) report.ReportRequest {
	req := report.ReportRequest{CountryID: optionalQuery(r, "country_id")}
	req.StartDate, req.EndDate = period(r)
	return req
}

func writeFile(w http.ResponseWriter, file report.File) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		slog.Error("Failed to write report", "file", file.Name, "error", err)
	}
}

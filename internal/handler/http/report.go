package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/lumaclean/wfm-backend-go/internal/domain/billing"
	"github.com/lumaclean/wfm-backend-go/internal/handler/http/response"
	"github.com/lumaclean/wfm-backend-go/internal/service/export"
)

type ReportHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	MonthlyExport(w http.ResponseWriter, r *http.Request)
	Annual(w http.ResponseWriter, r *http.Request)
	ClearAnnualCache(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	billingService billing.Service
	exportService  *export.ExportService
}

func NewReportHandler(billingService billing.Service, exportService *export.ExportService) ReportHandler {
	return &reportHandlerImpl{
		billingService: billingService,
		exportService:  exportService,
	}
}

// Monthly implements ReportHandler.
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	req := billing.MonthlyReportRequest{
		Year:  queryInt(r, "year"),
		Month: queryInt(r, "month"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.billingService.BuildMonthlyReport(r.Context(), req.Year, req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// MonthlyExport implements ReportHandler.
func (h *reportHandlerImpl) MonthlyExport(w http.ResponseWriter, r *http.Request) {
	req := billing.MonthlyReportRequest{
		Year:  queryInt(r, "year"),
		Month: queryInt(r, "month"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.exportService.MonthlyReportXLSX(r.Context(), req.Year, req.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("report-%04d-%02d.xlsx", req.Year, req.Month)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Annual implements ReportHandler.
func (h *reportHandlerImpl) Annual(w http.ResponseWriter, r *http.Request) {
	req := billing.AnnualReportRequest{Year: queryInt(r, "year")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := h.billingService.GenerateAnnualReport(r.Context(), req.Year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// ClearAnnualCache implements ReportHandler. Without a year it clears
// every cached annual report.
func (h *reportHandlerImpl) ClearAnnualCache(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("year") == "" {
		if err := h.billingService.ClearAllAnnualCaches(); err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "All annual report caches cleared", nil)
		return
	}

	req := billing.AnnualReportRequest{Year: queryInt(r, "year")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	if err := h.billingService.ClearAnnualCache(req.Year); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Annual report cache cleared", nil)
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

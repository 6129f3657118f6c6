package handler

import (
	"net/http"

	"github.com/brushline/contractor-api/internal/service"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// PaymentsSummary godoc
// @Summary Payments summary
// @Description Aggregate outgoing payments by recipient type, project and month
// @Tags Reports
// @Produce json
// @Success 200 {object} domain.PaymentsSummaryDTO
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /reports/payments-summary [get]
func (h *ReportHandler) PaymentsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.PaymentsSummary(r.Context())
	if err != nil {
		h.logger.Error("failed to build payments summary", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// InvoicesSummary godoc
// @Summary Invoices summary
// @Description Aggregate invoices by status with total and outstanding amounts
// @Tags Reports
// @Produce json
// @Success 200 {object} domain.InvoicesSummaryDTO
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /reports/invoices-summary [get]
func (h *ReportHandler) InvoicesSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.InvoicesSummary(r.Context())
	if err != nil {
		h.logger.Error("failed to build invoices summary", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// FinancialSummary godoc
// @Summary Financial summary
// @Description Income from paid invoices and expenses from payments merged into a daily profit series
// @Tags Reports
// @Produce json
// @Success 200 {object} domain.FinancialSummaryDTO
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security CookieAuth
// @Security BearerAuth
// @Router /reports/financial-summary [get]
func (h *ReportHandler) FinancialSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.FinancialSummary(r.Context())
	if err != nil {
		h.logger.Error("failed to build financial summary", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

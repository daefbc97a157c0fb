package handlers

import (
	"fmt"
	"net/http"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/services"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/timeutil"
	"github.com/skyxwalker/Food-Stall-ERP-System/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

func (h *ReportHandler) ProfitLoss(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date range, use YYYY-MM-DD")
		return
	}

	report, err := h.Service.ProfitLoss(r.Context(), from, to)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, report)
}

func (h *ReportHandler) ProfitLossPDF(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date range, use YYYY-MM-DD")
		return
	}

	data, err := h.Service.ProfitLossPDF(r.Context(), from, to)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("profit-loss-%s-%s.pdf",
		from.Format(timeutil.DateLayout), to.Format(timeutil.DateLayout))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Dashboard(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

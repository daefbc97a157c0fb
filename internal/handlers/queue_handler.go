package handlers

import (
	"net/http"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/middleware"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/services"
	"github.com/skyxwalker/Food-Stall-ERP-System/pkg/utils"
)

type QueueHandler struct {
	Service *services.QueueService
}

func NewQueueHandler(s *services.QueueService) *QueueHandler {
	return &QueueHandler{Service: s}
}

// EmployeeQueue serves the prep board of the authenticated employee.
func (h *QueueHandler) EmployeeQueue(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	view, err := h.Service.EmployeeQueue(r.Context(), userID)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, view)
}

func (h *QueueHandler) StaffQueue(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.StaffQueue(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, view)
}

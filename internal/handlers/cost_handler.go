package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/models"
	"github.com/skyxwalker/Food-Stall-ERP-System/internal/services"
	"github.com/skyxwalker/Food-Stall-ERP-System/pkg/utils"
)

type CostHandler struct {
	Service *services.CostService
}

func NewCostHandler(s *services.CostService) *CostHandler {
	return &CostHandler{Service: s}
}

// CreateCost attributes a cost. Responds 201 when a new entry was created
// and 200 when the amount was merged into an existing combined pool.
func (h *CostHandler) CreateCost(w http.ResponseWriter, r *http.Request) {
	var draft models.CostEntryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&draft); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.AttributeCost(r.Context(), &draft)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Outcome == models.CostAttributionMerged {
		status = http.StatusOK
	}
	utils.JSON(w, status, result)
}

func (h *CostHandler) UpdateCost(w http.ResponseWriter, r *http.Request) {
	var draft models.CostEntryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&draft); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.Service.UpdateCost(r.Context(), mux.Vars(r)["id"], &draft)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

func (h *CostHandler) ListCosts(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListCosts(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entries)
}

func (h *CostHandler) DeleteCost(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteCost(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusNoContent, nil)
}

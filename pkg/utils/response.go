package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/apperrors"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[HTTP] encode response: %v", err)
	}
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ServiceError maps service-layer errors onto HTTP statuses: validation 400,
// not found 404, storage 502, anything else 500.
func ServiceError(w http.ResponseWriter, err error) {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		Error(w, http.StatusBadRequest, ve.Message)
		return
	}
	var nf *apperrors.NotFoundError
	if errors.As(err, &nf) {
		Error(w, http.StatusNotFound, nf.Error())
		return
	}
	var se *apperrors.StorageError
	if errors.As(err, &se) {
		log.Printf("[HTTP] storage error: %v", se)
		Error(w, http.StatusBadGateway, "Storage unavailable")
		return
	}
	log.Printf("[HTTP] internal error: %v", err)
	Error(w, http.StatusInternalServerError, "Internal server error")
}

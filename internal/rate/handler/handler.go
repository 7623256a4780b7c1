package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"currencymonitor/internal/domain"
	"currencymonitor/internal/rate"
)

type Validator interface {
	ValidateCodes(base, quote string) error
	ValidateCode(code string) error
	Currencies() []domain.RecognizedCurrency
}

type Service interface {
	GetByCodes(ctx context.Context, base, quote string) (rate.View, error)
	List(ctx context.Context, code string) ([]rate.View, error)
}

// Trigger starts an out of schedule rate update.
type Trigger interface {
	TriggerNow() error
}

type Handler struct {
	validator Validator
	service   Service
	trigger   Trigger
}

func NewRateHandler(validator Validator, service Service, trigger Trigger) *Handler {
	return &Handler{validator: validator, service: service, trigger: trigger}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

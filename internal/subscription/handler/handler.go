package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"currencymonitor/internal/domain"
	"currencymonitor/internal/subscription"

	"github.com/shopspring/decimal"
)

type Service interface {
	List(ctx context.Context, email string) ([]domain.Subscription, error)
	Get(ctx context.Context, id string) (domain.Subscription, error)
	Create(ctx context.Context, in subscription.Input) (domain.Subscription, error)
	Update(ctx context.Context, id string, in subscription.Input) (domain.Subscription, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	service Service
}

func NewSubscriptionHandler(service Service) *Handler {
	return &Handler{service: service}
}

type SubscriptionRequest struct {
	Label  string          `json:"label" example:"holidays"`
	Email  string          `json:"email" example:"someone@example.com"`
	Sell   string          `json:"sell" example:"EUR"`
	Buy    string          `json:"buy" example:"BRL"`
	Target decimal.Decimal `json:"target" swaggertype:"string" example:"6.5"`
}

func (r SubscriptionRequest) input() subscription.Input {
	return subscription.Input{
		Label:  r.Label,
		Email:  r.Email,
		Sell:   r.Sell,
		Buy:    r.Buy,
		Target: r.Target,
	}
}

type SubscriptionResponse struct {
	ID               string          `json:"id" example:"9A3F1C0B22D4E871"`
	Label            string          `json:"label" example:"holidays"`
	Email            string          `json:"email" example:"someone@example.com"`
	Sell             string          `json:"sell" example:"EUR"`
	Buy              string          `json:"buy" example:"BRL"`
	Target           decimal.Decimal `json:"target" swaggertype:"string" example:"6.5"`
	LastNotification *time.Time      `json:"last_notification,omitempty"`
}

func toResponse(sub domain.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:     sub.ID,
		Label:  sub.Label,
		Email:  sub.EmailAddress,
		Sell:   sub.CodeCurrencyToSell,
		Buy:    sub.CodeCurrencyToBuy,
		Target: sub.TargetPriceOfSellingCurrency,
	}
	if !sub.LastNotification.IsZero() {
		ts := sub.LastNotification
		resp.LastNotification = &ts
	}
	return resp
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

func decodeRequest(w http.ResponseWriter, r *http.Request) (SubscriptionRequest, error) {
	var req SubscriptionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	err := dec.Decode(&req)
	return req, err
}

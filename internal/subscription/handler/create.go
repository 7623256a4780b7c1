package handler

import (
	"errors"
	"net/http"

	"currencymonitor/internal/subscription"

	"github.com/sirupsen/logrus"
)

// Create godoc
// @Summary Subscribe to a target rate
// @Description Sends an e-mail once a day while the sold currency is worth at least target units of the bought one
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body SubscriptionRequest true "Subscription"
// @Success 201 {object} SubscriptionResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /subscriptions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.service.Create(r.Context(), req.input())
	if err != nil {
		if errors.Is(err, subscription.ErrInvalidSubscription) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		msg := "ups, couldn't create subscription this time"
		logrus.WithError(err).WithField("handler", "Create").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	writeJSON(w, http.StatusCreated, toResponse(sub))
}

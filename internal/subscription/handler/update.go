package handler

import (
	"errors"
	"net/http"

	"currencymonitor/internal/domain"
	"currencymonitor/internal/subscription"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Update godoc
// @Summary Change subscription
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription id"
// @Param request body SubscriptionRequest true "Subscription"
// @Success 200 {object} SubscriptionResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /subscriptions/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := decodeRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := h.service.Update(r.Context(), id, req.input())
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrInvalidSubscription):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrSubscriptionNotFound):
			writeError(w, http.StatusNotFound, "subscription not found")
		default:
			msg := "ups, couldn't update subscription this time"
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "Update", "id": id}).Error(msg)
			writeError(w, http.StatusInternalServerError, msg)
		}
		return
	}
	writeJSON(w, http.StatusOK, toResponse(sub))
}

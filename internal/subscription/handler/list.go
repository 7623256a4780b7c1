package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// List godoc
// @Summary List subscriptions
// @Description Subscriptions of the given e-mail address, all of them when omitted
// @Tags Subscriptions
// @Produce json
// @Param email query string false "Owner e-mail address"
// @Success 200 {array} SubscriptionResponse
// @Failure 500 {object} errorResponse
// @Router /subscriptions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		msg := "ups, couldn't list subscriptions this time"
		logrus.WithError(err).WithField("handler", "List").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	resp := make([]SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, toResponse(sub))
	}
	writeJSON(w, http.StatusOK, resp)
}

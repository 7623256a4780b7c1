package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type TriggerUpdateResponse struct {
	Status string `json:"status" example:"scheduled"`
}

// TriggerUpdate godoc
// @Summary Update rates now
// @Description Starts a rate update outside of the regular schedule
// @Tags Rates
// @Produce json
// @Success 202 {object} TriggerUpdateResponse
// @Failure 503 {object} errorResponse
// @Router /rates/updates [post]
func (h *Handler) TriggerUpdate(w http.ResponseWriter, _ *http.Request) {
	if err := h.trigger.TriggerNow(); err != nil {
		logrus.WithError(err).WithField("handler", "TriggerUpdate").Error("rate update wasn't triggered")
		writeError(w, http.StatusServiceUnavailable, "failed to trigger rate update")
		return
	}
	writeJSON(w, http.StatusAccepted, TriggerUpdateResponse{Status: "scheduled"})
}

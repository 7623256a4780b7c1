package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"currencymonitor/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type RateResponse struct {
	Base      string    `json:"base" example:"EUR"`
	Quote     string    `json:"quote" example:"BRL"`
	Value     float64   `json:"value" example:"6.7805"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-01-02T15:04:05Z"`
}

// GetByCodes godoc
// @Summary Get latest rate
// @Description Latest scraped rate of base expressed in quote
// @Tags Rates
// @Produce json
// @Param base path string true "Base currency code"
// @Param quote path string true "Quote currency code"
// @Success 200 {object} RateResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates/{base}/{quote} [get]
func (h *Handler) GetByCodes(w http.ResponseWriter, r *http.Request) {
	base := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "base")))
	quote := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "quote")))

	if err := h.validator.ValidateCodes(base, quote); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.service.GetByCodes(r.Context(), base, quote)
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			writeError(w, http.StatusNotFound, "rate not found")
			return
		}
		msg := "ups, couldn't get rate by codes this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetByCodes", "base": base, "quote": quote}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, RateResponse{
		Base:      view.Base,
		Quote:     view.Quote,
		Value:     view.Value,
		UpdatedAt: view.UpdatedAt,
	})
}

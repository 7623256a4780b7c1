package handler

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

type ListRatesResponse struct {
	Rates []RateResponse `json:"rates"`
}

// ListRates godoc
// @Summary List stored rates
// @Description Every stored rate in both directions, optionally only those based on one currency
// @Tags Rates
// @Produce json
// @Param currency query string false "Base currency code"
// @Success 200 {object} ListRatesResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates [get]
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("currency")))
	if err := h.validator.ValidateCode(code); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := h.service.List(r.Context(), code)
	if err != nil {
		msg := "ups, couldn't list rates this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "ListRates", "currency": code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := ListRatesResponse{Rates: make([]RateResponse, 0, len(views))}
	for _, v := range views {
		res.Rates = append(res.Rates, RateResponse{Base: v.Base, Quote: v.Quote, Value: v.Value, UpdatedAt: v.UpdatedAt})
	}
	writeJSON(w, http.StatusOK, res)
}

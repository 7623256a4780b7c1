package handler

import (
	"net/http"
)

type CurrencyResponse struct {
	Code    string `json:"code" example:"BRL"`
	Name    string `json:"name" example:"Brazilian Real"`
	Symbol  string `json:"symbol" example:"R$"`
	Country string `json:"country" example:"Brazil"`
}

type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// ListCurrencies godoc
// @Summary List recognized currencies
// @Description Currencies subscriptions may refer to
// @Tags Currencies
// @Produce json
// @Success 200 {object} ListCurrenciesResponse
// @Router /currencies [get]
func (h *Handler) ListCurrencies(w http.ResponseWriter, _ *http.Request) {
	currencies := h.validator.Currencies()
	res := ListCurrenciesResponse{Currencies: make([]CurrencyResponse, 0, len(currencies))}
	for _, c := range currencies {
		res.Currencies = append(res.Currencies, CurrencyResponse(c))
	}
	writeJSON(w, http.StatusOK, res)
}

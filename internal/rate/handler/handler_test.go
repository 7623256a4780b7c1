package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"currencymonitor/internal/domain"
	"currencymonitor/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockValidator struct{ mock.Mock }

func (m *MockValidator) ValidateCodes(base, quote string) error {
	args := m.Called(base, quote)
	return args.Error(0)
}

func (m *MockValidator) ValidateCode(code string) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockValidator) Currencies() []domain.RecognizedCurrency {
	args := m.Called()
	c, _ := args.Get(0).([]domain.RecognizedCurrency)
	return c
}

type MockService struct{ mock.Mock }

func (m *MockService) GetByCodes(ctx context.Context, base, quote string) (rate.View, error) {
	args := m.Called(ctx, base, quote)
	v, _ := args.Get(0).(rate.View)
	return v, args.Error(1)
}

func (m *MockService) List(ctx context.Context, code string) ([]rate.View, error) {
	args := m.Called(ctx, code)
	v, _ := args.Get(0).([]rate.View)
	return v, args.Error(1)
}

type MockTrigger struct{ mock.Mock }

func (m *MockTrigger) TriggerNow() error { return m.Called().Error(0) }

type errorJSON struct {
	Error string `json:"error"`
}

func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// --- GetByCodes ---

func TestHandler_GetByCodes_ValidationErrors(t *testing.T) {
	cases := []struct {
		name         string
		validatorErr error
	}{
		{name: "base required", validatorErr: rate.ErrBaseRequired},
		{name: "quote required", validatorErr: rate.ErrQuoteRequired},
		{name: "same codes", validatorErr: rate.ErrSameCodes},
		{name: "base unsupported", validatorErr: rate.ErrBaseUnsupported},
		{name: "quote unsupported", validatorErr: rate.ErrQuoteUnsupported},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockValidator := new(MockValidator)
			mockService := new(MockService)
			h := NewRateHandler(mockValidator, mockService, new(MockTrigger))

			req := withURLParams(httptest.NewRequest(http.MethodGet, "/rates/usd/eur", nil),
				map[string]string{"base": " usd ", "quote": " eur"})
			rr := httptest.NewRecorder()

			mockValidator.On("ValidateCodes", "USD", "EUR").Return(tc.validatorErr).Once()

			h.GetByCodes(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.Equal(t, tc.validatorErr.Error(), ej.Error)

			mockService.AssertNotCalled(t, "GetByCodes", mock.Anything, mock.Anything, mock.Anything)
			mockValidator.AssertExpectations(t)
		})
	}
}

func TestHandler_GetByCodes_NotFound(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService, new(MockTrigger))

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/rates/usd/eur", nil),
		map[string]string{"base": "usd", "quote": "eur"})
	rr := httptest.NewRecorder()

	mockValidator.On("ValidateCodes", "USD", "EUR").Return(nil).Once()
	mockService.On("GetByCodes", mock.Anything, "USD", "EUR").Return(rate.View{}, domain.ErrRateNotFound).Once()

	h.GetByCodes(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "rate not found", ej.Error)
	mockService.AssertExpectations(t)
}

func TestHandler_GetByCodes_InternalError(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService, new(MockTrigger))

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/rates/usd/eur", nil),
		map[string]string{"base": "usd", "quote": "eur"})
	rr := httptest.NewRecorder()

	mockValidator.On("ValidateCodes", "USD", "EUR").Return(nil).Once()
	mockService.On("GetByCodes", mock.Anything, "USD", "EUR").Return(rate.View{}, errors.New("boom")).Once()

	h.GetByCodes(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "ups, couldn't get rate by codes this time", ej.Error)
}

func TestHandler_GetByCodes_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService, new(MockTrigger))

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/rates/eur/brl", nil),
		map[string]string{"base": " eur ", "quote": " brl "})
	rr := httptest.NewRecorder()

	now := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	view := rate.View{Base: "EUR", Quote: "BRL", Value: 6.7805, UpdatedAt: now}

	mockValidator.On("ValidateCodes", "EUR", "BRL").Return(nil).Once()
	mockService.On("GetByCodes", mock.Anything, "EUR", "BRL").Return(view, nil).Once()

	h.GetByCodes(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var res RateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "EUR", res.Base)
	require.Equal(t, "BRL", res.Quote)
	require.InDelta(t, 6.7805, res.Value, 1e-9)
	require.True(t, res.UpdatedAt.Equal(now))
	mockValidator.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

// --- ListRates ---

func TestHandler_ListRates_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService, new(MockTrigger))

	req := httptest.NewRequest(http.MethodGet, "/rates?currency=eur", nil)
	rr := httptest.NewRecorder()

	mockValidator.On("ValidateCode", "EUR").Return(nil).Once()
	mockService.On("List", mock.Anything, "EUR").Return([]rate.View{
		{Base: "EUR", Quote: "BRL", Value: 8},
		{Base: "EUR", Quote: "USD", Value: 1.25},
	}, nil).Once()

	h.ListRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var res ListRatesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Len(t, res.Rates, 2)
	require.Equal(t, "USD", res.Rates[1].Quote)
	mockService.AssertExpectations(t)
}

func TestHandler_ListRates_EmptyIsArray(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService, new(MockTrigger))

	req := httptest.NewRequest(http.MethodGet, "/rates", nil)
	rr := httptest.NewRecorder()

	mockValidator.On("ValidateCode", "").Return(nil).Once()
	mockService.On("List", mock.Anything, "").Return([]rate.View{}, nil).Once()

	h.ListRates(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"rates":[]}`, rr.Body.String())
}

func TestHandler_ListRates_InvalidCurrency(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService, new(MockTrigger))

	req := httptest.NewRequest(http.MethodGet, "/rates?currency=xyz", nil)
	rr := httptest.NewRecorder()

	mockValidator.On("ValidateCode", "XYZ").Return(rate.ErrCodeUnsupported).Once()

	h.ListRates(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHandler_ListRates_InternalError(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService, new(MockTrigger))

	req := httptest.NewRequest(http.MethodGet, "/rates", nil)
	rr := httptest.NewRecorder()

	mockValidator.On("ValidateCode", "").Return(nil).Once()
	mockService.On("List", mock.Anything, "").Return(nil, errors.New("db failed")).Once()

	h.ListRates(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "ups, couldn't list rates this time", ej.Error)
}

// --- ListCurrencies ---

func TestHandler_ListCurrencies(t *testing.T) {
	mockValidator := new(MockValidator)
	h := NewRateHandler(mockValidator, new(MockService), new(MockTrigger))

	mockValidator.On("Currencies").Return([]domain.RecognizedCurrency{
		{Code: "BRL", Name: "Brazilian Real", Symbol: "R$", Country: "Brazil"},
	}).Once()

	rr := httptest.NewRecorder()
	h.ListCurrencies(rr, httptest.NewRequest(http.MethodGet, "/currencies", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"currencies":[{"code":"BRL","name":"Brazilian Real","symbol":"R$","country":"Brazil"}]}`, rr.Body.String())
}

// --- TriggerUpdate ---

func TestHandler_TriggerUpdate_Accepted(t *testing.T) {
	trigger := new(MockTrigger)
	h := NewRateHandler(new(MockValidator), new(MockService), trigger)
	trigger.On("TriggerNow").Return(nil).Once()

	rr := httptest.NewRecorder()
	h.TriggerUpdate(rr, httptest.NewRequest(http.MethodPost, "/rates/updates", nil))

	require.Equal(t, http.StatusAccepted, rr.Code)
	require.JSONEq(t, `{"status":"scheduled"}`, rr.Body.String())
	trigger.AssertExpectations(t)
}

func TestHandler_TriggerUpdate_Failure(t *testing.T) {
	trigger := new(MockTrigger)
	h := NewRateHandler(new(MockValidator), new(MockService), trigger)
	trigger.On("TriggerNow").Return(rate.ErrSchedulerNotStarted).Once()

	rr := httptest.NewRecorder()
	h.TriggerUpdate(rr, httptest.NewRequest(http.MethodPost, "/rates/updates", nil))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "failed to trigger rate update", ej.Error)
}

package mailer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"currencymonitor/internal/config"
	"currencymonitor/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var observedAt = time.Date(2024, 5, 14, 12, 30, 0, 0, time.UTC)

func subscription() domain.Subscription {
	return domain.Subscription{
		ID:                           "CAFEBABE",
		Label:                        "holidays",
		EmailAddress:                 "receiver@example.com",
		CodeCurrencyToSell:           "EUR",
		CodeCurrencyToBuy:            "BRL",
		TargetPriceOfSellingCurrency: decimal.RequireFromString("7"),
	}
}

func TestSubject(t *testing.T) {
	require.Equal(t, "rate EUR->BRL reached desired value", Subject(subscription()))
}

func TestBody_RevertsPricesBelowOne(t *testing.T) {
	rate := domain.NewExchangeRate(domain.NewExchangePair("EUR", "BRL"), 0.125, observedAt)
	require.Equal(t, "1 EUR = 8 BRL [2024-05-14T12:30:00Z]\n", Body(rate))

	rate = domain.NewExchangeRate(domain.NewExchangePair("EUR", "USD"), 1.08, observedAt)
	require.Equal(t, "1 EUR = 1.08 USD [2024-05-14T12:30:00Z]\n", Body(rate))
}

func TestNewSendgridNotifier_IncompleteConfig(t *testing.T) {
	_, err := NewSendgridNotifier(config.Mailer{FromEmail: "sender@example.com"})
	require.Error(t, err)
}

func TestSendgridNotifier_Notify(t *testing.T) {
	var got struct {
		Subject          string                 `json:"subject"`
		From             struct{ Email string } `json:"from"`
		Personalizations []struct {
			To []struct{ Email string } `json:"to"`
		} `json:"personalizations"`
		Content []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"content"`
	}
	var auth, path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n, err := NewSendgridNotifier(config.Mailer{
		APIKey:    "SG.key",
		Host:      srv.URL,
		FromEmail: "sender@example.com",
		FromName:  "Currency Monitor",
	})
	require.NoError(t, err)

	rate := domain.NewExchangeRate(domain.NewExchangePair("EUR", "BRL"), 0.125, observedAt)
	require.NoError(t, n.Notify(context.Background(), subscription(), rate))

	require.Equal(t, "Bearer SG.key", auth)
	require.Equal(t, "/v3/mail/send", path)
	require.Equal(t, "rate EUR->BRL reached desired value", got.Subject)
	require.Equal(t, "sender@example.com", got.From.Email)
	require.Len(t, got.Personalizations, 1)
	require.Equal(t, "receiver@example.com", got.Personalizations[0].To[0].Email)
	require.Len(t, got.Content, 1)
	require.Equal(t, "text/plain", got.Content[0].Type)
	require.Contains(t, got.Content[0].Value, "1 EUR = 8 BRL")
}

func TestSendgridNotifier_Notify_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"errors":[{"message":"too many"}]}`))
	}))
	defer srv.Close()

	n, err := NewSendgridNotifier(config.Mailer{APIKey: "SG.key", Host: srv.URL, FromEmail: "sender@example.com"})
	require.NoError(t, err)

	err = n.Notify(context.Background(), subscription(), domain.NewExchangeRate(domain.NewExchangePair("EUR", "BRL"), 0.125, observedAt))

	var sendErr *SendError
	require.ErrorAs(t, err, &sendErr)
	require.Equal(t, http.StatusTooManyRequests, sendErr.StatusCode)
	require.ErrorIs(t, err, ErrMailAPILimitReached)
}

func TestLogNotifier(t *testing.T) {
	rate := domain.NewExchangeRate(domain.NewExchangePair("EUR", "BRL"), 0.125, observedAt)
	require.NoError(t, LogNotifier{}.Notify(context.Background(), subscription(), rate))
}

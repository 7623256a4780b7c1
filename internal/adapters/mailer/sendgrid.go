package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"currencymonitor/internal/config"
	"currencymonitor/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

const (
	defaultHost  = "https://api.sendgrid.com"
	sendEndpoint = "/v3/mail/send"
)

var ErrMailAPILimitReached = errors.New("mail api limit reached")

// SendError is returned when the mail API answers with a non 2xx status.
type SendError struct {
	StatusCode int
	Body       string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("error sending email bad status code: %d, body: %s", e.StatusCode, e.Body)
}

func (e *SendError) Is(target error) bool {
	return target == ErrMailAPILimitReached && e.StatusCode == http.StatusTooManyRequests
}

// SendgridNotifier e-mails subscribers through the SendGrid v3 API.
type SendgridNotifier struct {
	apiKey string
	host   string
	from   *mail.Email
}

func NewSendgridNotifier(cfg config.Mailer) (*SendgridNotifier, error) {
	if cfg.APIKey == "" || cfg.FromEmail == "" {
		return nil, errors.New("incomplete mailer config: api key and sender are required")
	}
	host := cfg.Host
	if host == "" {
		host = defaultHost
	}
	return &SendgridNotifier{
		apiKey: cfg.APIKey,
		host:   host,
		from:   mail.NewEmail(cfg.FromName, cfg.FromEmail),
	}, nil
}

func (n *SendgridNotifier) Notify(ctx context.Context, sub domain.Subscription, rate domain.ExchangeRate) error {
	to := mail.NewEmail(sub.Label, sub.EmailAddress)
	message := mail.NewSingleEmail(n.from, Subject(sub), to, Body(rate), "")

	request := sendgrid.GetRequest(n.apiKey, sendEndpoint, n.host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(message)

	resp, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &SendError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	logrus.WithFields(logrus.Fields{"subscription_id": sub.ID, "status": resp.StatusCode}).Debug("Notification mail accepted")
	return nil
}

// LogNotifier only logs the notifications. It stands in for the mailer when
// no API key is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, sub domain.Subscription, rate domain.ExchangeRate) error {
	logrus.WithFields(logrus.Fields{
		"subscription_id": sub.ID,
		"to":              sub.EmailAddress,
		"subject":         Subject(sub),
	}).Info(Body(rate))
	return nil
}

package subscription

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"currencymonitor/internal/adapters"
	"currencymonitor/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

var ErrInvalidSubscription = errors.New("invalid subscription")

// Targets are stored as numeric(18,6).
const (
	targetScale    = 6
	targetIntegers = 12
)

var maxTarget = decimal.New(1, targetIntegers)

// ValidationError carries the per field messages of a rejected input.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string { return e.Fields.Error() }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidSubscription }

// CodeChecker tells whether a currency code is recognized.
type CodeChecker interface {
	IsSupported(code string) bool
}

// Input is the user editable part of a subscription.
type Input struct {
	Label  string
	Email  string
	Sell   string
	Buy    string
	Target decimal.Decimal
}

func (in Input) validate(codes CodeChecker) error {
	supported := validation.By(func(value interface{}) error {
		if code, _ := value.(string); !codes.IsSupported(code) {
			return errors.New("currency not supported")
		}
		return nil
	})
	positive := validation.By(func(value interface{}) error {
		if d, _ := value.(decimal.Decimal); !d.IsPositive() {
			return errors.New("must be greater than zero")
		}
		return nil
	})
	storable := validation.By(func(value interface{}) error {
		d, _ := value.(decimal.Decimal)
		if !d.Equal(d.Truncate(targetScale)) {
			return fmt.Errorf("must have at most %d decimal places", targetScale)
		}
		if d.GreaterThanOrEqual(maxTarget) {
			return fmt.Errorf("must be less than %s", maxTarget)
		}
		return nil
	})

	err := validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
		validation.Field(&in.Label, validation.Length(0, 100)),
		validation.Field(&in.Sell, validation.Required, supported),
		validation.Field(&in.Buy, validation.Required, supported,
			validation.NotIn(in.Sell).Error("must differ from the sold currency")),
		validation.Field(&in.Target, positive, storable),
	)
	if err == nil {
		return nil
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return err
}

func (in Input) normalized() Input {
	in.Label = strings.TrimSpace(in.Label)
	in.Email = strings.TrimSpace(in.Email)
	in.Sell = strings.ToUpper(strings.TrimSpace(in.Sell))
	in.Buy = strings.ToUpper(strings.TrimSpace(in.Buy))
	return in
}

// Service manages the subscriptions on behalf of their owners.
type Service struct {
	store adapters.SubscriptionStore
	codes CodeChecker
}

// List returns the subscriptions of email, or all of them for an empty email.
func (s *Service) List(ctx context.Context, email string) ([]domain.Subscription, error) {
	if email = strings.TrimSpace(email); email != "" {
		return s.store.ListByEmail(ctx, email)
	}
	return s.store.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (domain.Subscription, error) {
	return s.store.GetByID(ctx, id)
}

// Create stores a new subscription under an id derived from its fields, so
// submitting the same subscription twice keeps a single one.
func (s *Service) Create(ctx context.Context, in Input) (domain.Subscription, error) {
	in = in.normalized()
	if err := in.validate(s.codes); err != nil {
		return domain.Subscription{}, err
	}

	sub := domain.Subscription{
		Label:                        in.Label,
		EmailAddress:                 in.Email,
		CodeCurrencyToSell:           in.Sell,
		CodeCurrencyToBuy:            in.Buy,
		TargetPriceOfSellingCurrency: in.Target,
	}
	sub.ID = domain.GenerateID(sub.IdentityFields()...)

	if err := s.store.Upsert(ctx, sub); err != nil {
		return domain.Subscription{}, fmt.Errorf("failed to save subscription: %w", err)
	}
	return sub, nil
}

// Update replaces the editable fields of an existing subscription. Its id and
// last notification time are kept.
func (s *Service) Update(ctx context.Context, id string, in Input) (domain.Subscription, error) {
	in = in.normalized()
	if err := in.validate(s.codes); err != nil {
		return domain.Subscription{}, err
	}

	sub, err := s.store.GetByID(ctx, id)
	if err != nil {
		return domain.Subscription{}, err
	}
	sub.Label = in.Label
	sub.EmailAddress = in.Email
	sub.CodeCurrencyToSell = in.Sell
	sub.CodeCurrencyToBuy = in.Buy
	sub.TargetPriceOfSellingCurrency = in.Target

	if err := s.store.Upsert(ctx, sub); err != nil {
		return domain.Subscription{}, fmt.Errorf("failed to save subscription: %w", err)
	}
	return sub, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func NewService(store adapters.SubscriptionStore, codes CodeChecker) *Service {
	return &Service{store: store, codes: codes}
}

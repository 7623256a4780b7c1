package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription is a user's request to be e-mailed once the price of the
// currency they sell reaches a target, expressed in the currency they buy.
type Subscription struct {
	ID                           string          `json:"id"`
	Label                        string          `json:"label"`
	EmailAddress                 string          `json:"email"`
	CodeCurrencyToSell           string          `json:"sell"`
	CodeCurrencyToBuy            string          `json:"buy"`
	TargetPriceOfSellingCurrency decimal.Decimal `json:"target"`
	LastNotification             time.Time       `json:"last_notification"`
}

func (s Subscription) Pair() ExchangePair {
	return NewExchangePair(s.CodeCurrencyToSell, s.CodeCurrencyToBuy)
}

// IdentityFields lists, in order, the fields a generated subscription id is
// derived from. LastNotification is excluded so the id stays stable.
func (s Subscription) IdentityFields() []string {
	return []string{
		s.Label,
		s.EmailAddress,
		s.CodeCurrencyToSell,
		s.CodeCurrencyToBuy,
		s.TargetPriceOfSellingCurrency.String(),
	}
}

func (s Subscription) RecordID() string     { return s.ID }
func (s Subscription) PartitionKey() string { return s.CodeCurrencyToBuy }

package domain

import (
	"time"
)

// ExchangeRate is the latest observed price of the primary currency expressed
// in the secondary currency. Codes are always in canonical order.
type ExchangeRate struct {
	ID                     string    `json:"id"`
	PrimaryCurrencyCode    string    `json:"currency1"`
	SecondaryCurrencyCode  string    `json:"currency2"`
	PriceOfPrimaryCurrency float64   `json:"rate"`
	Timestamp              time.Time `json:"timestamp"`
}

func NewExchangeRate(pair ExchangePair, price float64, ts time.Time) ExchangeRate {
	return ExchangeRate{
		PrimaryCurrencyCode:    pair.Primary(),
		SecondaryCurrencyCode:  pair.Secondary(),
		PriceOfPrimaryCurrency: price,
		Timestamp:              ts.UTC(),
	}
}

func (r ExchangeRate) Pair() ExchangePair {
	return NewExchangePair(r.PrimaryCurrencyCode, r.SecondaryCurrencyCode)
}

// Reverted returns the same quote seen from the other side. The result is not
// canonical and is meant for presentation only.
func (r ExchangeRate) Reverted() ExchangeRate {
	return ExchangeRate{
		ID:                     r.ID,
		PrimaryCurrencyCode:    r.SecondaryCurrencyCode,
		SecondaryCurrencyCode:  r.PrimaryCurrencyCode,
		PriceOfPrimaryCurrency: 1 / r.PriceOfPrimaryCurrency,
		Timestamp:              r.Timestamp,
	}
}

// ExchangeRateID returns the record id of a rate. Together with the partition
// key (primary code) it identifies the single stored record of a pair.
func ExchangeRateID(r ExchangeRate) string {
	return r.SecondaryCurrencyCode
}

func (r ExchangeRate) RecordID() string     { return r.ID }
func (r ExchangeRate) PartitionKey() string { return r.PrimaryCurrencyCode }

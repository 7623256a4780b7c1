package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRateNotFound         = errors.New("rate not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrRateUnavailable      = errors.New("exchange rate unavailable")
	ErrSubscriptionMismatch = errors.New("subscription does not match exchange rate")
)

// RateUnavailableError is returned when the rate page of a pair could be
// downloaded but did not contain a usable quote.
type RateUnavailableError struct {
	Pair ExchangePair
	URL  string
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("exchange rate %s could not be extracted from %s", e.Pair, e.URL)
}

func (e *RateUnavailableError) Is(target error) bool { return target == ErrRateUnavailable }

// MismatchError reports a subscription handed to the matcher for a rate whose
// pair it does not watch.
type MismatchError struct {
	SubscriptionID string
	Pair           ExchangePair
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("subscription %s does not refer to exchange rate %s", e.SubscriptionID, e.Pair)
}

func (e *MismatchError) Is(target error) bool { return target == ErrSubscriptionMismatch }

package mailer

import (
	"fmt"
	"strconv"
	"time"

	"currencymonitor/internal/domain"
)

// Subject of the mail sent to a subscriber whose target was reached.
func Subject(sub domain.Subscription) string {
	return fmt.Sprintf("rate %s->%s reached desired value", sub.CodeCurrencyToSell, sub.CodeCurrencyToBuy)
}

// Body renders the quote so that the price shown is never below one.
func Body(rate domain.ExchangeRate) string {
	if rate.PriceOfPrimaryCurrency < 1 {
		rate = rate.Reverted()
	}
	return fmt.Sprintf("1 %s = %s %s [%s]\n",
		rate.PrimaryCurrencyCode,
		strconv.FormatFloat(rate.PriceOfPrimaryCurrency, 'f', -1, 64),
		rate.SecondaryCurrencyCode,
		rate.Timestamp.UTC().Format(time.RFC3339),
	)
}

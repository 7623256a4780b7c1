package rate

import (
	"cmp"
	"time"

	"currencymonitor/internal/domain"
)

// View is a rate in a caller chosen direction: 1 Base = Value Quote.
type View struct {
	Base      string
	Quote     string
	Value     float64
	UpdatedAt time.Time
}

func viewOf(r domain.ExchangeRate, base string) View {
	if base == r.PrimaryCurrencyCode {
		return View{Base: r.PrimaryCurrencyCode, Quote: r.SecondaryCurrencyCode, Value: r.PriceOfPrimaryCurrency, UpdatedAt: r.Timestamp}
	}
	rev := r.Reverted()
	return View{Base: rev.PrimaryCurrencyCode, Quote: rev.SecondaryCurrencyCode, Value: rev.PriceOfPrimaryCurrency, UpdatedAt: r.Timestamp}
}

func compareViews(a, b View) int {
	if c := cmp.Compare(a.Base, b.Base); c != 0 {
		return c
	}
	return cmp.Compare(a.Quote, b.Quote)
}

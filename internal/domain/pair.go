package domain

import (
	"cmp"
	"regexp"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// IsCurrencyCode reports whether code is a three-letter upper-case ISO-4217 style code.
func IsCurrencyCode(code string) bool {
	return currencyCodeRe.MatchString(code)
}

// ExchangePair is an unordered pair of currencies stored in canonical order:
// the lexicographically smaller code is always the primary one.
type ExchangePair struct {
	primary   string
	secondary string
}

func NewExchangePair(a, b string) ExchangePair {
	if a > b {
		a, b = b, a
	}
	return ExchangePair{primary: a, secondary: b}
}

func (p ExchangePair) Primary() string   { return p.primary }
func (p ExchangePair) Secondary() string { return p.secondary }

// Compare orders pairs by primary code, then by secondary code.
func (p ExchangePair) Compare(other ExchangePair) int {
	if c := cmp.Compare(p.primary, other.primary); c != 0 {
		return c
	}
	return cmp.Compare(p.secondary, other.secondary)
}

func (p ExchangePair) IsZero() bool { return p == ExchangePair{} }

func (p ExchangePair) String() string { return p.primary + "/" + p.secondary }

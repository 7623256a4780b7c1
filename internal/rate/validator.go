package rate

import (
	"cmp"
	"errors"
	"slices"

	"currencymonitor/internal/domain"
)

var (
	ErrBaseRequired     = errors.New("base currency is required")
	ErrQuoteRequired    = errors.New("quote currency is required")
	ErrSameCodes        = errors.New("base and quote must be different")
	ErrBaseUnsupported  = errors.New("base currency not supported")
	ErrQuoteUnsupported = errors.New("quote currency not supported")
	ErrCodeUnsupported  = errors.New("currency not supported")
)

// CurrencyValidator checks codes against the recognized currencies loaded at startup.
type CurrencyValidator struct {
	currencies []domain.RecognizedCurrency // read only, sorted by code
	codes      map[string]struct{}
}

func (v *CurrencyValidator) ValidateCodes(base, quote string) error {
	if base == "" {
		return ErrBaseRequired
	}
	if quote == "" {
		return ErrQuoteRequired
	}
	if base == quote {
		return ErrSameCodes
	}
	if !v.IsSupported(base) {
		return ErrBaseUnsupported
	}
	if !v.IsSupported(quote) {
		return ErrQuoteUnsupported
	}
	return nil
}

// ValidateCode checks a single optional filter code; empty is accepted.
func (v *CurrencyValidator) ValidateCode(code string) error {
	if code != "" && !v.IsSupported(code) {
		return ErrCodeUnsupported
	}
	return nil
}

func (v *CurrencyValidator) IsSupported(code string) bool {
	_, ok := v.codes[code]
	return ok
}

func (v *CurrencyValidator) Currencies() []domain.RecognizedCurrency {
	return slices.Clone(v.currencies)
}

func NewValidator(currencies []domain.RecognizedCurrency) *CurrencyValidator {
	sorted := slices.Clone(currencies)
	slices.SortFunc(sorted, func(a, b domain.RecognizedCurrency) int { return cmp.Compare(a.Code, b.Code) })

	codes := make(map[string]struct{}, len(sorted))
	for _, c := range sorted {
		if domain.IsCurrencyCode(c.Code) {
			codes[c.Code] = struct{}{}
		}
	}
	return &CurrencyValidator{currencies: sorted, codes: codes}
}

package rate

import (
	"regexp"
	"strings"

	"currencymonitor/internal/domain"

	"github.com/shopspring/decimal"
)

// quoteRe matches a quote like "1 BRL = 0,14748 EUR" preceded by the start of
// the text or by a character that cannot belong to it. The trailing boundary
// is checked by findQuotes so the delimiter stays available to the next quote.
var quoteRe = regexp.MustCompile(`(?:^|[^\w.,])1\s+([A-Z]{3})\s*=\s*(\d+(?:[.,]\d+)?)\s+([A-Z]{3})`)

// findQuotes returns the from, price and to groups of every delimited quote.
func findQuotes(text string) [][3]string {
	var quotes [][3]string
	for _, m := range quoteRe.FindAllStringSubmatchIndex(text, -1) {
		if end := m[1]; end < len(text) && isWordByte(text[end]) {
			continue
		}
		quotes = append(quotes, [3]string{text[m[2]:m[3]], text[m[4]:m[5]], text[m[6]:m[7]]})
	}
	return quotes
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// TryExtract finds the single quote in text and returns its canonical pair
// together with the price of the primary currency in the secondary one.
// Text without a quote, with a zero price, or with quotes that disagree
// yields ok == false.
func TryExtract(text string) (pair domain.ExchangePair, price float64, ok bool) {
	quotes := findQuotes(text)
	if len(quotes) == 0 {
		return domain.ExchangePair{}, 0, false
	}

	first := quotes[0]
	for _, q := range quotes[1:] {
		if q != first {
			return domain.ExchangePair{}, 0, false
		}
	}

	from, to := first[0], first[2]
	if from == to {
		return domain.ExchangePair{}, 0, false
	}

	raw, err := decimal.NewFromString(strings.Replace(first[1], ",", ".", 1))
	if err != nil || !raw.IsPositive() {
		return domain.ExchangePair{}, 0, false
	}

	pair = domain.NewExchangePair(from, to)
	if from != pair.Primary() {
		raw = decimal.NewFromInt(1).Div(raw)
	}
	return pair, raw.InexactFloat64(), true
}

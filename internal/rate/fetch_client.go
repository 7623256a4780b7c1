package rate

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"currencymonitor/internal/adapters"
	"currencymonitor/internal/domain"
)

// FetchClient obtains the latest rate of a pair from the converter web site.
type FetchClient struct {
	fetcher adapters.PageFetcher
	baseURL string
	now     func() time.Time
}

func (c *FetchClient) FetchLatest(ctx context.Context, pair domain.ExchangePair) (domain.ExchangeRate, error) {
	pageURL, err := c.pageURL(pair)
	if err != nil {
		return domain.ExchangeRate{}, err
	}

	page, err := c.fetcher.DownloadFrom(ctx, pageURL)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("failed to download rate page of %s: %w", pair, err)
	}

	found, price, ok := TryExtract(page)
	if !ok || found != pair {
		return domain.ExchangeRate{}, &domain.RateUnavailableError{Pair: pair, URL: pageURL}
	}

	return domain.NewExchangeRate(pair, price, c.now()), nil
}

// pageURL builds <base>/<PRIMARY>/<SECONDARY>.
func (c *FetchClient) pageURL(pair domain.ExchangePair) (string, error) {
	u, err := url.JoinPath(c.baseURL, pair.Primary(), pair.Secondary())
	if err != nil {
		return "", fmt.Errorf("failed to build rate page url from %q: %w", c.baseURL, err)
	}
	return u, nil
}

func NewFetchClient(fetcher adapters.PageFetcher, baseURL string) *FetchClient {
	return &FetchClient{fetcher: fetcher, baseURL: baseURL, now: time.Now}
}

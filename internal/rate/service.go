package rate

import (
	"context"
	"slices"

	"currencymonitor/internal/adapters"
	"currencymonitor/internal/domain"
)

type Service struct {
	repo  adapters.ExchangeRateRepository
	cache adapters.RateCache
}

// GetByCodes returns the latest stored rate of base expressed in quote.
func (s *Service) GetByCodes(ctx context.Context, base string, quote string) (View, error) {
	pair := domain.NewExchangePair(base, quote)

	rate, ok := s.cache.Get(pair)
	if !ok {
		var err error
		rate, err = s.repo.GetByPair(ctx, pair)
		if err != nil {
			return View{}, err
		}
		s.cache.Set(rate)
	}
	return viewOf(rate, base), nil
}

// List returns every stored rate in both directions, sorted by base and quote.
// A non-empty code keeps only the views whose base is code.
func (s *Service) List(ctx context.Context, code string) ([]View, error) {
	rates, err := s.repo.List(ctx, code)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, 2*len(rates))
	for _, r := range rates {
		for _, base := range []string{r.PrimaryCurrencyCode, r.SecondaryCurrencyCode} {
			if code != "" && base != code {
				continue
			}
			views = append(views, viewOf(r, base))
		}
	}
	slices.SortFunc(views, compareViews)
	return views, nil
}

func NewService(repo adapters.ExchangeRateRepository, cache adapters.RateCache) *Service {
	return &Service{repo: repo, cache: cache}
}

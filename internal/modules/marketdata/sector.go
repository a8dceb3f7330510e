package marketdata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/bistfolio/bistfolio/pkg/cache"
)

// YahooSectorProvider implements SectorProvider against the Yahoo
// Finance quote API. Classification rarely changes, so results are
// cached for a long TTL independent of the cache default.
type YahooSectorProvider struct {
	cli     *http.Client
	baseURL string
	cache   cache.Cache
	log     zerolog.Logger
}

// NewYahooSectorProvider creates a sector provider.
func NewYahooSectorProvider(c cache.Cache, log zerolog.Logger) *YahooSectorProvider {
	return &YahooSectorProvider{
		cli:     &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://query1.finance.yahoo.com/v7/finance/quote",
		cache:   c,
		log:     log.With().Str("provider", "yahoo-sector").Logger(),
	}
}

// SectorInfo implements SectorProvider.
func (p *YahooSectorProvider) SectorInfo(symbol string) (SectorInfo, error) {
	cacheKey := "sector_" + symbol
	if cached, ok := p.cache.Get(cacheKey); ok {
		if info, ok := cached.(SectorInfo); ok {
			return info, nil
		}
	}

	params := url.Values{}
	params.Add("symbols", FormatSymbol(symbol))
	params.Add("fields", "symbol,sector,industry")

	req, err := http.NewRequest(http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return SectorInfo{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := p.cli.Do(req)
	if err != nil {
		return SectorInfo{}, fmt.Errorf("sector request failed for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SectorInfo{}, fmt.Errorf("sector lookup http %d for %s", resp.StatusCode, symbol)
	}

	var raw struct {
		QuoteResponse struct {
			Result []struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"result"`
		} `json:"quoteResponse"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return SectorInfo{}, fmt.Errorf("sector decode failed for %s: %w", symbol, err)
	}
	if len(raw.QuoteResponse.Result) == 0 {
		return SectorInfo{}, fmt.Errorf("no quote data for %s", symbol)
	}

	info := SectorInfo{
		Sector:   raw.QuoteResponse.Result[0].Sector,
		Industry: raw.QuoteResponse.Result[0].Industry,
		Source:   "yahoo",
	}
	p.cache.SetWithTTL(cacheKey, info, 24*time.Hour)
	return info, nil
}

package marketdata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bistfolio/bistfolio/internal/modules/ledger"
)

// YahooProvider fetches daily bars from the Yahoo Finance v8 chart API.
// BIST symbols are suffixed with .IS; FX pairs (ending in =X) and
// already-suffixed symbols pass through unchanged.
type YahooProvider struct {
	cli     *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewYahooProvider creates a provider with a bounded request timeout.
func NewYahooProvider(log zerolog.Logger) *YahooProvider {
	return &YahooProvider{
		cli:     &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://query2.finance.yahoo.com/v8/finance/chart",
		log:     log.With().Str("provider", "yahoo").Logger(),
	}
}

// FormatSymbol maps a bare BIST ticker to its Yahoo form.
func FormatSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if strings.HasSuffix(s, "=X") || strings.HasSuffix(s, ".IS") {
		return s
	}
	return s + ".IS"
}

// FetchDaily implements HistoryProvider.
func (p *YahooProvider) FetchDaily(symbol string, start, end ledger.Day) ([]DailyPrice, error) {
	url := fmt.Sprintf("%s/%s?interval=1d&period1=%d&period2=%d",
		p.baseURL, FormatSymbol(symbol), start.Time().Unix(), end.AddDays(1).Time().Unix())

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "bistfolio/1.0")

	started := time.Now()
	resp, err := p.cli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo request failed for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo http %d for %s", resp.StatusCode, symbol)
	}

	var raw struct {
		Chart struct {
			Result []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Open   []float64 `json:"open"`
						High   []float64 `json:"high"`
						Low    []float64 `json:"low"`
						Close  []float64 `json:"close"`
						Volume []int64   `json:"volume"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"result"`
		} `json:"chart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("yahoo decode failed for %s: %w", symbol, err)
	}
	if len(raw.Chart.Result) == 0 || len(raw.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoPriceData
	}

	result := raw.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	var bars []DailyPrice
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == 0 {
			continue
		}
		t := time.Unix(ts, 0).UTC()
		bar := DailyPrice{
			Date:  ledger.NewDay(t.Year(), t.Month(), t.Day()),
			Close: quote.Close[i],
		}
		if i < len(quote.Open) {
			bar.Open = quote.Open[i]
		}
		if i < len(quote.High) {
			bar.High = quote.High[i]
		}
		if i < len(quote.Low) {
			bar.Low = quote.Low[i]
		}
		if i < len(quote.Volume) {
			bar.Volume = quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	p.log.Debug().
		Str("symbol", symbol).
		Int("bars", len(bars)).
		Dur("duration", time.Since(started)).
		Msg("Fetched daily history")

	if len(bars) == 0 {
		return nil, ErrNoPriceData
	}
	return bars, nil
}

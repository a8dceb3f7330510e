package analysis

import (
	"errors"
	"testing"

	"github.com/bistfolio/bistfolio/internal/modules/marketdata"
	"github.com/bistfolio/bistfolio/pkg/logger"
)

type stubSectorProvider struct {
	sectors map[string]marketdata.SectorInfo
}

func (s *stubSectorProvider) SectorInfo(symbol string) (marketdata.SectorInfo, error) {
	info, ok := s.sectors[symbol]
	if !ok {
		return marketdata.SectorInfo{}, errors.New("unknown symbol")
	}
	return info, nil
}

func TestClassifyCollectsAllResults(t *testing.T) {
	provider := &stubSectorProvider{sectors: map[string]marketdata.SectorInfo{
		"THYAO": {Sector: "Industrials", Industry: "Airlines"},
		"GARAN": {Sector: "Financial Services", Industry: "Banks"},
		"SISE":  {Sector: "Basic Materials", Industry: "Glass"},
	}}
	analyzer := NewSectorAnalyzer(nil, nil, provider, logger.Nop())

	symbols := []string{"THYAO", "GARAN", "SISE", "UNKNOWN"}
	results := analyzer.classify(symbols)

	if len(results) != len(symbols) {
		t.Fatalf("got %d results, want %d", len(results), len(symbols))
	}
	if results["THYAO"].info.Sector != "Industrials" {
		t.Errorf("THYAO sector = %q", results["THYAO"].info.Sector)
	}
	if results["UNKNOWN"].err == nil {
		t.Error("unknown symbol should carry an error")
	}
}

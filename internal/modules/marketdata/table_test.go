package marketdata

import (
	"testing"
	"time"

	"github.com/bistfolio/bistfolio/internal/modules/ledger"
)

func day(y int, m time.Month, d int) ledger.Day {
	return ledger.NewDay(y, m, d)
}

func TestPriceTableAsOf(t *testing.T) {
	table := NewPriceTable(map[string][]ClosePoint{
		"THYAO": {
			{Date: day(2024, 1, 5), Close: 100},
			{Date: day(2024, 1, 8), Close: 105},
		},
	})

	tests := []struct {
		name     string
		day      ledger.Day
		expected float64
		found    bool
	}{
		{"before any data", day(2024, 1, 4), 0, false},
		{"exact day", day(2024, 1, 5), 100, true},
		{"weekend forward fill", day(2024, 1, 7), 100, true},
		{"next trading day", day(2024, 1, 8), 105, true},
		{"after all data", day(2024, 2, 1), 105, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.AsOf("THYAO", tt.day)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if ok && got != tt.expected {
				t.Errorf("AsOf = %v, want %v", got, tt.expected)
			}
		})
	}

	if _, ok := table.AsOf("GARAN", day(2024, 1, 8)); ok {
		t.Error("unknown symbol should not be found")
	}
}

func TestPriceTableSortsUnorderedInput(t *testing.T) {
	table := NewPriceTable(map[string][]ClosePoint{
		"THYAO": {
			{Date: day(2024, 1, 8), Close: 105},
			{Date: day(2024, 1, 5), Close: 100},
		},
	})

	got, ok := table.Latest("THYAO")
	if !ok || got != 105 {
		t.Errorf("Latest = %v (%v), want 105", got, ok)
	}
}

func TestPriceTableLatestRate(t *testing.T) {
	table := NewPriceTable(map[string][]ClosePoint{
		"EURTRY=X": {{Date: day(2024, 1, 5), Close: 33.5}},
	})

	rate, ok := table.LatestRate("EUR", "TRY")
	if !ok || rate != 33.5 {
		t.Errorf("LatestRate = %v (%v), want 33.5", rate, ok)
	}
	if _, ok := table.LatestRate("USD", "TRY"); ok {
		t.Error("missing rate should not be found")
	}
}

func TestMomentum(t *testing.T) {
	bars := []DailyPrice{
		{Date: day(2024, 1, 1), Close: 100},
		{Date: day(2024, 1, 2), Close: 102},
		{Date: day(2024, 1, 3), Close: 110},
	}

	m := Momentum(bars, 2)
	if m == nil {
		t.Fatal("expected momentum, got nil")
	}
	if *m != 10 {
		t.Errorf("momentum = %v, want 10", *m)
	}

	if Momentum(bars, 10) != nil {
		t.Error("short series should return nil momentum")
	}
}

func TestFormatSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"THYAO", "THYAO.IS"},
		{"thyao", "THYAO.IS"},
		{"GARAN.IS", "GARAN.IS"},
		{"EURTRY=X", "EURTRY=X"},
		{" SISE ", "SISE.IS"},
	}

	for _, tt := range tests {
		if got := FormatSymbol(tt.in); got != tt.want {
			t.Errorf("FormatSymbol(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildChartWarmup(t *testing.T) {
	bars := make([]DailyPrice, 60)
	base := day(2024, 1, 1)
	for i := range bars {
		bars[i] = DailyPrice{Date: base.AddDays(i), Close: 100 + float64(i)}
	}

	points := BuildChart(bars)
	if len(points) != 60 {
		t.Fatalf("got %d points, want 60", len(points))
	}

	// Indicators are nil during their warmup window.
	if points[10].SMA20 != nil {
		t.Error("SMA20 present before 20 bars")
	}
	if points[19].SMA20 == nil {
		t.Error("SMA20 missing at bar 20")
	}
	if points[48].SMA50 != nil {
		t.Error("SMA50 present before 50 bars")
	}
	if points[49].SMA50 == nil {
		t.Error("SMA50 missing at bar 50")
	}
	if points[0].DailyReturn != nil {
		t.Error("first bar has a daily return")
	}
	if points[1].DailyReturn == nil {
		t.Error("second bar missing daily return")
	}
}

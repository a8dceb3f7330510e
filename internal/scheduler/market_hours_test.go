package scheduler

import (
	"testing"
	"time"

	"github.com/bistfolio/bistfolio/pkg/logger"
)

func TestIsOpenAt(t *testing.T) {
	svc := NewMarketHoursService(logger.Nop())
	istanbul, _ := time.LoadLocation("Europe/Istanbul")

	tests := []struct {
		name string
		at   time.Time
		open bool
	}{
		{"tuesday midday", time.Date(2026, 2, 3, 13, 0, 0, 0, istanbul), true},
		{"tuesday before open", time.Date(2026, 2, 3, 9, 30, 0, 0, istanbul), false},
		{"tuesday after close", time.Date(2026, 2, 3, 18, 30, 0, 0, istanbul), false},
		{"saturday", time.Date(2026, 2, 7, 13, 0, 0, 0, istanbul), false},
		{"republic day holiday", time.Date(2026, 10, 29, 13, 0, 0, 0, istanbul), false},
		{"open boundary", time.Date(2026, 2, 3, 10, 0, 0, 0, istanbul), true},
		{"close boundary exclusive", time.Date(2026, 2, 3, 18, 0, 0, 0, istanbul), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.isOpenAt(tt.at); got != tt.open {
				t.Errorf("isOpenAt(%s) = %v, want %v", tt.at, got, tt.open)
			}
		})
	}
}

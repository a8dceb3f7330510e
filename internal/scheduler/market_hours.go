package scheduler

import (
	"time"

	"github.com/rs/zerolog"
)

// TradingWindow represents a single trading period within a day
type TradingWindow struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

// ExchangeCalendar defines trading hours and holidays for an exchange
type ExchangeCalendar struct {
	Code           string
	Name           string
	Timezone       *time.Location
	TradingWindows []TradingWindow
	Holidays       []time.Time
}

// MarketHoursService answers whether Borsa Istanbul is trading. The
// refresh job uses it to skip fetches that would return yesterday's
// bars anyway.
type MarketHoursService struct {
	calendar *ExchangeCalendar
	log      zerolog.Logger
}

// NewMarketHoursService creates the BIST market hours service
func NewMarketHoursService(log zerolog.Logger) *MarketHoursService {
	istanbul, _ := time.LoadLocation("Europe/Istanbul")

	return &MarketHoursService{
		log: log.With().Str("component", "market_hours").Logger(),
		calendar: &ExchangeCalendar{
			Code:     "XIST",
			Name:     "Borsa Istanbul",
			Timezone: istanbul,
			TradingWindows: []TradingWindow{
				// Continuous session, no lunch break.
				{OpenHour: 10, OpenMinute: 0, CloseHour: 18, CloseMinute: 0},
			},
			Holidays: []time.Time{
				time.Date(2026, 1, 1, 0, 0, 0, 0, istanbul),   // New Year's Day
				time.Date(2026, 3, 20, 0, 0, 0, 0, istanbul),  // Ramazan Bayrami Eve (half day, treated closed)
				time.Date(2026, 3, 23, 0, 0, 0, 0, istanbul),  // Ramazan Bayrami
				time.Date(2026, 4, 23, 0, 0, 0, 0, istanbul),  // National Sovereignty Day
				time.Date(2026, 5, 1, 0, 0, 0, 0, istanbul),   // Labor Day
				time.Date(2026, 5, 19, 0, 0, 0, 0, istanbul),  // Ataturk Commemoration Day
				time.Date(2026, 5, 27, 0, 0, 0, 0, istanbul),  // Kurban Bayrami
				time.Date(2026, 5, 28, 0, 0, 0, 0, istanbul),  // Kurban Bayrami
				time.Date(2026, 5, 29, 0, 0, 0, 0, istanbul),  // Kurban Bayrami
				time.Date(2026, 7, 15, 0, 0, 0, 0, istanbul),  // Democracy Day
				time.Date(2026, 8, 30, 0, 0, 0, 0, istanbul),  // Victory Day
				time.Date(2026, 10, 29, 0, 0, 0, 0, istanbul), // Republic Day
			},
		},
	}
}

// IsMarketOpen checks if BIST is currently open for trading
func (s *MarketHoursService) IsMarketOpen() bool {
	return s.isOpenAt(time.Now())
}

func (s *MarketHoursService) isOpenAt(t time.Time) bool {
	cal := s.calendar
	now := t.In(cal.Timezone)

	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, cal.Timezone)
	for _, holiday := range cal.Holidays {
		if holiday.Equal(today) {
			return false
		}
	}

	currentMinutes := now.Hour()*60 + now.Minute()
	for _, window := range cal.TradingWindows {
		openMinutes := window.OpenHour*60 + window.OpenMinute
		closeMinutes := window.CloseHour*60 + window.CloseMinute

		if currentMinutes >= openMinutes && currentMinutes < closeMinutes {
			return true
		}
	}

	return false
}

// MarketStatus represents the status of the market
type MarketStatus struct {
	Exchange string `json:"exchange"`
	IsOpen   bool   `json:"is_open"`
	Timezone string `json:"timezone"`
}

// Status returns the current market status
func (s *MarketHoursService) Status() MarketStatus {
	return MarketStatus{
		Exchange: s.calendar.Name,
		IsOpen:   s.IsMarketOpen(),
		Timezone: s.calendar.Timezone.String(),
	}
}

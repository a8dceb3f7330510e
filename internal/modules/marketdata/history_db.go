package marketdata

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver for history files
	"github.com/rs/zerolog"

	"github.com/bistfolio/bistfolio/internal/modules/ledger"
)

// HistoryDB stores daily price bars in one SQLite file per symbol
// under a history directory. Readers open the file on demand; there is
// no long-lived connection per symbol.
type HistoryDB struct {
	historyDir string
	log        zerolog.Logger
}

// NewHistoryDB creates a new history database accessor.
func NewHistoryDB(historyDir string, log zerolog.Logger) *HistoryDB {
	return &HistoryDB{
		historyDir: historyDir,
		log:        log.With().Str("component", "history_db").Logger(),
	}
}

// GetDailyPrices fetches bars for a symbol within [start, end].
func (h *HistoryDB) GetDailyPrices(symbol string, start, end ledger.Day) ([]DailyPrice, error) {
	db, err := h.open(symbol, false)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `
		SELECT date, open_price, high_price, low_price, close_price, volume
		FROM daily_prices
		WHERE date >= ? AND date <= ?
		ORDER BY date
	`
	rows, err := db.Query(query, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query daily prices for %s: %w", symbol, err)
	}
	defer rows.Close()

	var bars []DailyPrice
	for rows.Next() {
		var bar DailyPrice
		var date string
		var volume sql.NullInt64

		if err := rows.Scan(&date, &bar.Open, &bar.High, &bar.Low, &bar.Close, &volume); err != nil {
			return nil, fmt.Errorf("failed to scan daily price: %w", err)
		}
		bar.Date, err = ledger.ParseDay(date)
		if err != nil {
			return nil, err
		}
		bar.Volume = volume.Int64
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily prices: %w", err)
	}
	if len(bars) == 0 {
		return nil, ErrNoPriceData
	}
	return bars, nil
}

// SaveDailyPrices upserts bars for a symbol.
func (h *HistoryDB) SaveDailyPrices(symbol string, bars []DailyPrice) error {
	db, err := h.open(symbol, true)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin history transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO daily_prices (date, open_price, high_price, low_price, close_price, volume)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			open_price = excluded.open_price,
			high_price = excluded.high_price,
			low_price = excluded.low_price,
			close_price = excluded.close_price,
			volume = excluded.volume
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, bar := range bars {
		if _, err := stmt.Exec(bar.Date.String(), bar.Open, bar.High, bar.Low, bar.Close, bar.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert bar %s/%s: %w", symbol, bar.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history upsert: %w", err)
	}

	h.log.Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("History saved")
	return nil
}

// LastDate returns the most recent stored bar date for a symbol. The
// second return is false when the symbol has no history file or rows.
func (h *HistoryDB) LastDate(symbol string) (ledger.Day, bool, error) {
	db, err := h.open(symbol, false)
	if err != nil {
		if err == ErrNoPriceData {
			return ledger.Day{}, false, nil
		}
		return ledger.Day{}, false, err
	}
	defer db.Close()

	var date sql.NullString
	if err := db.QueryRow(`SELECT MAX(date) FROM daily_prices`).Scan(&date); err != nil {
		return ledger.Day{}, false, fmt.Errorf("failed to query last date for %s: %w", symbol, err)
	}
	if !date.Valid || date.String == "" {
		return ledger.Day{}, false, nil
	}

	day, err := ledger.ParseDay(date.String)
	if err != nil {
		return ledger.Day{}, false, err
	}
	return day, true, nil
}

// LoadTable builds a PriceTable for the given symbols over [start, end].
// Symbols with no stored history are skipped, not fatal.
func (h *HistoryDB) LoadTable(symbols []string, start, end ledger.Day) (*PriceTable, error) {
	bars := make(map[string][]DailyPrice, len(symbols))
	for _, symbol := range symbols {
		symbolBars, err := h.GetDailyPrices(symbol, start, end)
		if err != nil {
			if err == ErrNoPriceData || os.IsNotExist(err) {
				h.log.Warn().Str("symbol", symbol).Msg("No stored history, skipping")
				continue
			}
			return nil, err
		}
		bars[symbol] = symbolBars
	}
	return FromBars(bars), nil
}

func (h *HistoryDB) open(symbol string, create bool) (*sql.DB, error) {
	name := strings.ToUpper(strings.TrimSpace(symbol))
	name = strings.ReplaceAll(name, "=", "_")
	path := filepath.Join(h.historyDir, name+".db")

	if !create {
		if _, err := os.Stat(path); err != nil {
			return nil, ErrNoPriceData
		}
	} else if err := os.MkdirAll(h.historyDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db for %s: %w", symbol, err)
	}

	if create {
		schema := `
			CREATE TABLE IF NOT EXISTS daily_prices (
				date        TEXT PRIMARY KEY,
				open_price  REAL,
				high_price  REAL,
				low_price   REAL,
				close_price REAL NOT NULL,
				volume      INTEGER
			)
		`
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create history schema: %w", err)
		}
	}

	return db, nil
}

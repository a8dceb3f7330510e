package ledger

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// Repository handles transaction persistence. The engine only ever
// reads ordered snapshots from it; writes come from the CRUD layer.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new transaction repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "ledger").Logger(),
	}
}

// EnsureSchema creates the transactions table if it does not exist.
// The seq column preserves insertion order so that same-day
// transactions replay deterministically.
func (r *Repository) EnsureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS transactions (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			id         TEXT NOT NULL UNIQUE,
			type       TEXT NOT NULL,
			symbol     TEXT,
			quantity   REAL NOT NULL,
			price      REAL,
			date       TEXT NOT NULL,
			currency   TEXT NOT NULL DEFAULT 'TRY',
			asset_type TEXT NOT NULL DEFAULT 'STOCK',
			note       TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_transactions_symbol ON transactions(symbol);
		CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create transactions schema: %w", err)
	}
	return nil
}

// Create inserts a new transaction after validating it.
func (r *Repository) Create(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	query := `
		INSERT INTO transactions (id, type, symbol, quantity, price, date, currency, asset_type, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		tx.ID,
		string(tx.Type),
		nullString(tx.Symbol),
		tx.Quantity,
		tx.Price,
		tx.Date.String(),
		tx.Currency,
		tx.AssetType,
		nullString(tx.Note),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	r.log.Info().
		Str("type", string(tx.Type)).
		Str("symbol", tx.Symbol).
		Float64("quantity", tx.Quantity).
		Str("date", tx.Date.String()).
		Msg("Transaction recorded")

	return nil
}

// List returns all transactions ordered by date, ties broken by
// insertion order.
func (r *Repository) List() ([]Transaction, error) {
	return r.query("SELECT id, type, symbol, quantity, price, date, currency, asset_type, note FROM transactions ORDER BY date, seq")
}

// ListBySymbol returns the ordered transactions for one symbol.
func (r *Repository) ListBySymbol(symbol string) ([]Transaction, error) {
	return r.query(
		"SELECT id, type, symbol, quantity, price, date, currency, asset_type, note FROM transactions WHERE symbol = ? ORDER BY date, seq",
		symbol,
	)
}

// Delete removes a transaction by ID.
func (r *Repository) Delete(id string) error {
	res, err := r.db.Exec("DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("transaction %s not found", id)
	}
	return nil
}

func (r *Repository) query(query string, args ...interface{}) ([]Transaction, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var tx Transaction
		var symbol, note sql.NullString
		var price sql.NullFloat64
		var date string

		err := rows.Scan(&tx.ID, &tx.Type, &symbol, &tx.Quantity, &price, &date, &tx.Currency, &tx.AssetType, &note)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		tx.Symbol = symbol.String
		tx.Note = note.String
		tx.Price = price.Float64
		tx.Date, err = ParseDay(date)
		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txs, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

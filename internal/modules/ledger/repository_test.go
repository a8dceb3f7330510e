package ledger

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/bistfolio/bistfolio/pkg/logger"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db, logger.Nop())
	if err := repo.EnsureSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return repo
}

func TestRepositoryCreateAndList(t *testing.T) {
	repo := testRepo(t)

	buy := tx(TypeBuy, "THYAO", 50, 100, day(2024, 1, 5))
	if err := repo.Create(buy); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	txs, err := repo.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}

	got := txs[0]
	if got.ID != buy.ID || got.Type != TypeBuy || got.Symbol != "THYAO" {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if !got.Date.Equal(day(2024, 1, 5)) {
		t.Errorf("date = %s, want 2024-01-05", got.Date)
	}
	if got.Currency != "TRY" || got.AssetType != "STOCK" {
		t.Errorf("defaults not preserved: %+v", got)
	}
}

func TestRepositoryRejectsInvalid(t *testing.T) {
	repo := testRepo(t)

	bad := tx(TypeBuy, "", 50, 100, day(2024, 1, 5))
	if err := repo.Create(bad); err == nil {
		t.Error("invalid transaction accepted")
	}

	txs, _ := repo.List()
	if len(txs) != 0 {
		t.Errorf("invalid transaction persisted: %v", txs)
	}
}

func TestRepositorySameDayOrderPreserved(t *testing.T) {
	repo := testRepo(t)

	d := day(2024, 1, 5)
	first := tx(TypeDeposit, "", 10000, 0, d)
	second := tx(TypeBuy, "THYAO", 50, 100, d)
	third := tx(TypeSell, "THYAO", 10, 110, d)

	for _, transaction := range []Transaction{first, second, third} {
		if err := repo.Create(transaction); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	txs, err := repo.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txs))
	}
	if txs[0].ID != first.ID || txs[1].ID != second.ID || txs[2].ID != third.ID {
		t.Error("same-day transactions not returned in insertion order")
	}
}

func TestRepositoryListBySymbol(t *testing.T) {
	repo := testRepo(t)

	repo.Create(tx(TypeBuy, "THYAO", 50, 100, day(2024, 1, 5)))
	repo.Create(tx(TypeBuy, "GARAN", 100, 45, day(2024, 1, 6)))
	repo.Create(tx(TypeSell, "THYAO", 20, 110, day(2024, 2, 1)))

	txs, err := repo.ListBySymbol("THYAO")
	if err != nil {
		t.Fatalf("ListBySymbol failed: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	for _, transaction := range txs {
		if transaction.Symbol != "THYAO" {
			t.Errorf("unexpected symbol %s", transaction.Symbol)
		}
	}
}

func TestRepositoryDelete(t *testing.T) {
	repo := testRepo(t)

	buy := tx(TypeBuy, "THYAO", 50, 100, day(2024, 1, 5))
	repo.Create(buy)

	if err := repo.Delete(buy.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(buy.ID); err == nil {
		t.Error("deleting a missing transaction should fail")
	}
}

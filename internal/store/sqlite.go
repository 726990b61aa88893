package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"gamma-guide/internal/models"
)

// SQLiteJournal implements Journal using SQLite.
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLiteJournal opens (or creates) the journal database at dbPath,
// creating the parent directory if needed.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	j := &SQLiteJournal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return j, nil
}

func (j *SQLiteJournal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		placed_at DATETIME NOT NULL,
		symbol TEXT NOT NULL,
		spot REAL NOT NULL,
		expiry TEXT NOT NULL,
		strike REAL NOT NULL,
		side TEXT NOT NULL,
		order_side TEXT NOT NULL,
		order_type TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price REAL NOT NULL,
		premium REAL NOT NULL,
		reg_fee REAL NOT NULL,
		exchange_fee REAL NOT NULL,
		contract_fee REAL NOT NULL,
		total REAL NOT NULL,
		max_profit REAL NOT NULL,
		max_profit_unbounded INTEGER NOT NULL,
		breakeven REAL NOT NULL,
		max_loss REAL NOT NULL,
		max_loss_unbounded INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_orders_placed_at ON orders(placed_at);
	`
	_, err := j.db.Exec(schema)
	return err
}

// SaveOrder persists one evaluated order and returns its row id.
func (j *SQLiteJournal) SaveOrder(ctx context.Context, entry *models.JournalEntry) (int64, error) {
	res, err := j.db.ExecContext(ctx, `
		INSERT INTO orders (
			placed_at, symbol, spot, expiry, strike, side, order_side, order_type,
			quantity, price, premium, reg_fee, exchange_fee, contract_fee, total,
			max_profit, max_profit_unbounded, breakeven, max_loss, max_loss_unbounded
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.PlacedAt, entry.Symbol, entry.Spot,
		entry.Order.Expiry, entry.Order.Strike, string(entry.Order.Side),
		string(entry.Order.OrderSide), string(entry.Order.OrderType), entry.Order.Quantity,
		entry.Price,
		entry.Risk.Premium, entry.Risk.RegFee, entry.Risk.ExchangeFee, entry.Risk.ContractFee, entry.Risk.Total,
		entry.Risk.MaxProfit, boolToInt(entry.Risk.MaxProfitUnbounded),
		entry.Risk.Breakeven,
		entry.Risk.MaxLoss, boolToInt(entry.Risk.MaxLossUnbounded),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save order: %w", err)
	}
	return res.LastInsertId()
}

// ListOrders returns the most recent orders, newest first.
func (j *SQLiteJournal) ListOrders(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, placed_at, symbol, spot, expiry, strike, side, order_side, order_type,
			quantity, price, premium, reg_fee, exchange_fee, contract_fee, total,
			max_profit, max_profit_unbounded, breakeven, max_loss, max_loss_unbounded
		FROM orders ORDER BY placed_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var side, orderSide, orderType string
		var profitUnbounded, lossUnbounded int
		if err := rows.Scan(
			&e.ID, &e.PlacedAt, &e.Symbol, &e.Spot,
			&e.Order.Expiry, &e.Order.Strike, &side, &orderSide, &orderType,
			&e.Order.Quantity, &e.Price,
			&e.Risk.Premium, &e.Risk.RegFee, &e.Risk.ExchangeFee, &e.Risk.ContractFee, &e.Risk.Total,
			&e.Risk.MaxProfit, &profitUnbounded, &e.Risk.Breakeven, &e.Risk.MaxLoss, &lossUnbounded,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		e.Order.Side = models.OptionSide(side)
		e.Order.OrderSide = models.OrderSide(orderSide)
		e.Order.OrderType = models.OrderType(orderType)
		e.Risk.MaxProfitUnbounded = profitUnbounded != 0
		e.Risk.MaxLossUnbounded = lossUnbounded != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

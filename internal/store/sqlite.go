package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/clearhaul/dispatch-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS orders (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'draft',
	form       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_orders_source ON orders(source);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateOrder(ctx context.Context, form *model.OrderForm, source model.OrderSource) (*model.Order, error) {
	if form == nil {
		return nil, eris.New("sqlite: create order: nil form")
	}
	formJSON, err := json.Marshal(form)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal form")
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:        uuid.NewString(),
		Source:    source,
		Status:    model.OrderStatusDraft,
		Form:      form,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO orders (id, source, status, form, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		order.ID, string(order.Source), string(order.Status), string(formJSON), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert order")
	}
	return order, nil
}

func (s *SQLiteStore) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, status, form, created_at, updated_at FROM orders WHERE id = ?`, id)

	var order model.Order
	var formJSON string
	err := row.Scan(&order.ID, &order.Source, &order.Status, &formJSON, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(err, "sqlite: get order %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get order")
	}
	if err := json.Unmarshal([]byte(formJSON), &order.Form); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal form")
	}
	return &order, nil
}

func (s *SQLiteStore) ListOrders(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	query := `SELECT id, source, status, form, created_at, updated_at FROM orders WHERE 1=1`
	var args []any
	if filter.Source != "" {
		query += ` AND source = ?`
		args = append(args, string(filter.Source))
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list orders")
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var order model.Order
		var formJSON string
		if err := rows.Scan(&order.ID, &order.Source, &order.Status, &formJSON, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan order")
		}
		if err := json.Unmarshal([]byte(formJSON), &order.Form); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal form")
		}
		orders = append(orders, order)
	}
	return orders, eris.Wrap(rows.Err(), "sqlite: list orders")
}

func (s *SQLiteStore) UpdateOrderForm(ctx context.Context, id string, form *model.OrderForm) error {
	if form == nil {
		return eris.New("sqlite: update order form: nil form")
	}
	formJSON, err := json.Marshal(form)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal form")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET form = ?, updated_at = ? WHERE id = ?`,
		string(formJSON), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: update order form")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return eris.Errorf("sqlite: update order form: no order %s", id)
	}
	return nil
}

func (s *SQLiteStore) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: update order status")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return eris.Errorf("sqlite: update order status: no order %s", id)
	}
	return nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/clearhaul/dispatch-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, satisfied by both
// *pgxpool.Pool and pgxmock's pool interface.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS orders (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	source     TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'draft',
	form       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_orders_source ON orders(source);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateOrder(ctx context.Context, form *model.OrderForm, source model.OrderSource) (*model.Order, error) {
	if form == nil {
		return nil, eris.New("postgres: create order: nil form")
	}
	formJSON, err := json.Marshal(form)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal form")
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
	_, err = s.pool.Exec(ctx,
		`INSERT INTO orders (id, source, status, form, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		order.ID, string(order.Source), string(order.Status), formJSON, now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert order")
	}
	return order, nil
}

func (s *PostgresStore) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, source, status, form, created_at, updated_at FROM orders WHERE id = $1`, id)

	var order model.Order
	var formJSON []byte
	err := row.Scan(&order.ID, &order.Source, &order.Status, &formJSON, &order.CreatedAt, &order.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(err, "postgres: get order %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get order")
	}
	if err := json.Unmarshal(formJSON, &order.Form); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal form")
	}
	return &order, nil
}

func (s *PostgresStore) ListOrders(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	query := `SELECT id, source, status, form, created_at, updated_at FROM orders WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Source != "" {
		query += ` AND source = ` + arg(string(filter.Source))
	}
	if filter.Status != "" {
		query += ` AND status = ` + arg(string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ` + arg(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list orders")
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var order model.Order
		var formJSON []byte
		if err := rows.Scan(&order.ID, &order.Source, &order.Status, &formJSON, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan order")
		}
		if err := json.Unmarshal(formJSON, &order.Form); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal form")
		}
		orders = append(orders, order)
	}
	return orders, eris.Wrap(rows.Err(), "postgres: list orders")
}

func (s *PostgresStore) UpdateOrderForm(ctx context.Context, id string, form *model.OrderForm) error {
	if form == nil {
		return eris.New("postgres: update order form: nil form")
	}
	formJSON, err := json.Marshal(form)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal form")
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE orders SET form = $1, updated_at = $2 WHERE id = $3`,
		formJSON, time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: update order form")
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: update order form: no order %s", id)
	}
	return nil
}

func (s *PostgresStore) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: update order status")
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: update order status: no order %s", id)
	}
	return nil
}


package store

import (
	"context"

	"github.com/clearhaul/dispatch-cli/internal/model"
)

// OrderFilter specifies criteria for listing orders.
type OrderFilter struct {
	Source model.OrderSource `json:"source,omitempty"`
	Status model.OrderStatus `json:"status,omitempty"`
	Limit  int               `json:"limit,omitempty"`
	Offset int               `json:"offset,omitempty"`
}

// Store defines the persistence interface for canonical orders.
type Store interface {
	CreateOrder(ctx context.Context, form *model.OrderForm, source model.OrderSource) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	UpdateOrderForm(ctx context.Context, id string, form *model.OrderForm) error
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

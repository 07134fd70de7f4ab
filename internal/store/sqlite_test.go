package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearhaul/dispatch-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "dispatch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func sampleForm(vin string) *model.OrderForm {
	form := model.NewOrderForm()
	form.Vehicle.VIN = vin
	form.Vehicle.Make = "Honda"
	form.DropoffLocation.Address = "123 King St, Toronto, ON"
	form.DropoffLocation.Breakdown.City = "Toronto"
	return form
}

func TestSQLiteCreateAndGetOrder(t *testing.T) {
	t.Parallel()
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateOrder(ctx, sampleForm("1HGBH41JXMN109186"), model.OrderSourceWebhook)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, model.OrderStatusDraft, created.Status)
	assert.Equal(t, model.OrderSourceWebhook, created.Source)

	got, err := st.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.Form)
	assert.Equal(t, "1HGBH41JXMN109186", got.Form.Vehicle.VIN)
	assert.Equal(t, "Toronto", got.Form.DropoffLocation.Breakdown.City)
	assert.Equal(t, model.ServiceTypePickup, got.Form.Service.ServiceType)
}

func TestSQLiteCreateOrderNilForm(t *testing.T) {
	t.Parallel()
	st := newTestSQLiteStore(t)

	_, err := st.CreateOrder(context.Background(), nil, model.OrderSourceManual)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil form")
}

func TestSQLiteGetOrderMissing(t *testing.T) {
	t.Parallel()
	st := newTestSQLiteStore(t)

	_, err := st.GetOrder(context.Background(), "nope")
	require.Error(t, err)
}

func TestSQLiteListOrders(t *testing.T) {
	t.Parallel()
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	webhook, err := st.CreateOrder(ctx, sampleForm("VIN-A"), model.OrderSourceWebhook)
	require.NoError(t, err)
	_, err = st.CreateOrder(ctx, sampleForm("VIN-B"), model.OrderSourceManual)
	require.NoError(t, err)
	imported, err := st.CreateOrder(ctx, sampleForm("VIN-C"), model.OrderSourceImport)
	require.NoError(t, err)
	require.NoError(t, st.UpdateOrderStatus(ctx, imported.ID, model.OrderStatusConfirmed))

	t.Run("no filter", func(t *testing.T) {
		orders, err := st.ListOrders(ctx, OrderFilter{})
		require.NoError(t, err)
		assert.Len(t, orders, 3)
	})

	t.Run("by source", func(t *testing.T) {
		orders, err := st.ListOrders(ctx, OrderFilter{Source: model.OrderSourceWebhook})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, webhook.ID, orders[0].ID)
	})

	t.Run("by status", func(t *testing.T) {
		orders, err := st.ListOrders(ctx, OrderFilter{Status: model.OrderStatusConfirmed})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, imported.ID, orders[0].ID)
	})

	t.Run("limit", func(t *testing.T) {
		orders, err := st.ListOrders(ctx, OrderFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})
}

func TestSQLiteUpdateOrderForm(t *testing.T) {
	t.Parallel()
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateOrder(ctx, sampleForm("VIN-A"), model.OrderSourceManual)
	require.NoError(t, err)

	updated := sampleForm("VIN-A")
	updated.Vehicle.Year = "2021"
	require.NoError(t, st.UpdateOrderForm(ctx, created.ID, updated))

	got, err := st.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2021", got.Form.Vehicle.Year)

	err = st.UpdateOrderForm(ctx, "nope", updated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no order nope")

	err = st.UpdateOrderForm(ctx, created.ID, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil form")
}

func TestSQLiteUpdateOrderStatus(t *testing.T) {
	t.Parallel()
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateOrder(ctx, sampleForm("VIN-A"), model.OrderSourceManual)
	require.NoError(t, err)

	require.NoError(t, st.UpdateOrderStatus(ctx, created.ID, model.OrderStatusConfirmed))
	got, err := st.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, got.Status)

	err = st.UpdateOrderStatus(ctx, "nope", model.OrderStatusConfirmed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no order nope")
}

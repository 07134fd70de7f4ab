package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearhaul/dispatch-cli/internal/model"
	"github.com/clearhaul/dispatch-cli/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "dispatch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	srv := httptest.NewServer(buildRouter(st, nil, 0, time.Minute, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv, st
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestServeHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeBody(t, resp)["status"])
}

func TestServeCORSHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://dispatch.example.com")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServeWebhookExtraction(t *testing.T) {
	srv, st := newTestServer(t)

	payload := `{
		"vin": "1HGBH41JXMN109186",
		"make": "Honda",
		"service_type": "to be delivered",
		"dropoff_address": "123 King St, Toronto, ON M5V 2T6"
	}`
	resp, err := http.Post(srv.URL+"/webhook/extraction", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "accepted", body["status"])
	orderID, _ := body["order_id"].(string)
	require.NotEmpty(t, orderID)

	order, err := st.GetOrder(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderSourceWebhook, order.Source)
	assert.Equal(t, "1HGBH41JXMN109186", order.Form.Vehicle.VIN)
	assert.Equal(t, model.ServiceTypeDelivery, order.Form.Service.ServiceType)
	assert.Equal(t, "Toronto", order.Form.DropoffLocation.Breakdown.City)
}

func TestServeWebhookInvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/webhook/extraction", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid request body", decodeBody(t, resp)["error"])
}

func TestServeWebhookNonObjectPayload(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, payload := range []string{`42`, `"just text"`, `[1, 2]`, `null`} {
		resp, err := http.Post(srv.URL+"/webhook/extraction", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "payload %s", payload)
		resp.Body.Close()
	}
}

func TestServeGetOrder(t *testing.T) {
	srv, st := newTestServer(t)

	form := model.NewOrderForm()
	form.Vehicle.VIN = "VIN-A"
	created, err := st.CreateOrder(context.Background(), form, model.OrderSourceManual)
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/orders/" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, created.ID, body["id"])

	resp, err = http.Get(srv.URL + "/orders/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_abc",
			"amount":   50000,
			"currency": "INR",
			"receipt":  "rcpt_1",
			"status":   "created",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key_id", "key_secret")
	order, err := c.CreateOrder(context.Background(), CreateOrderInput{
		AmountMinor: 50000,
		Currency:    "INR",
		Receipt:     "rcpt_1",
		Notes:       map[string]string{"purpose": "donation"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/orders", gotPath)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(50000), order.Amount)
	assert.Equal(t, float64(50000), gotBody["amount"])
	notes, _ := gotBody["notes"].(map[string]interface{})
	assert.Equal(t, "donation", notes["purpose"])
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "auth failed"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key_id", "wrong")
	_, err := c.CreateOrder(context.Background(), CreateOrderInput{AmountMinor: 100, Currency: "INR"})
	assert.Error(t, err)
}

func TestCreateOrderMissingOrderID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key_id", "key_secret")
	_, err := c.CreateOrder(context.Background(), CreateOrderInput{AmountMinor: 100, Currency: "INR"})
	assert.Error(t, err)
}

func TestCreateOrderWithoutCredentials(t *testing.T) {
	c := NewClient("http://unused", "", "")
	_, err := c.CreateOrder(context.Background(), CreateOrderInput{AmountMinor: 100, Currency: "INR"})
	assert.Error(t, err)
}

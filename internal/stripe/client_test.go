package stripe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := NewClient(zap.NewNop(), nil, server.URL, "sk_test_123")
	return client, server
}

func TestClient_FindProductByURL(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/products", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "challenge-42", r.URL.Query().Get("url"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(List[Product]{
			Object: "list",
			Data:   []Product{{ID: "prod_123", Name: "The Afrobeatles T-Shirt", URL: "challenge-42"}},
		})
	})
	defer server.Close()

	resp, err := client.FindProductByURL(context.Background(), "challenge-42")

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "prod_123", resp.Data[0].ID)
}

func TestClient_ListPrices(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/prices", r.URL.Path)
		assert.Equal(t, "prod_123", r.URL.Query().Get("product"))
		assert.Equal(t, "challenge-42", r.URL.Query().Get("lookup_keys[]"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(List[Price]{
			Object: "list",
			Data:   []Price{{ID: "price_456", UnitAmount: 2500, Currency: "usd", LookupKey: "challenge-42"}},
		})
	})
	defer server.Close()

	resp, err := client.ListPrices(context.Background(), "prod_123", "challenge-42")

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "price_456", resp.Data[0].ID)
	assert.EqualValues(t, 2500, resp.Data[0].UnitAmount)
}

func TestClient_CreateProduct(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/products", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "The Afrobeatles T-Shirt", r.PostForm.Get("name"))
		assert.Equal(t, "Afrobeatles Tour", r.PostForm.Get("description"))
		assert.Equal(t, "challenge-42", r.PostForm.Get("url"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Product{ID: "prod_123", Name: "The Afrobeatles T-Shirt"})
	})
	defer server.Close()

	resp, err := client.CreateProduct(context.Background(), "The Afrobeatles T-Shirt", "Afrobeatles Tour", "challenge-42")

	require.NoError(t, err)
	assert.Equal(t, "prod_123", resp.ID)
}

func TestClient_CreatePrice_TransfersLookupKey(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/prices", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "prod_123", r.PostForm.Get("product"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "2500", r.PostForm.Get("unit_amount"))
		assert.Equal(t, "challenge-42", r.PostForm.Get("lookup_key"))
		assert.Equal(t, "true", r.PostForm.Get("transfer_lookup_key"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Price{ID: "price_456", UnitAmount: 2500, LookupKey: "challenge-42"})
	})
	defer server.Close()

	resp, err := client.CreatePrice(context.Background(), "prod_123", 2500, "usd", "The Afrobeatles T-Shirt", "challenge-42")

	require.NoError(t, err)
	assert.Equal(t, "price_456", resp.ID)
	assert.Equal(t, "challenge-42", resp.LookupKey)
}

func TestClient_CreatePaymentLink(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_links", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "price_456", r.PostForm.Get("line_items[0][price]"))
		assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))
		assert.Equal(t, "a@x.com", r.PostForm.Get("metadata[fan_email]"))
		assert.Equal(t, "A", r.PostForm.Get("metadata[fan_name]"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(PaymentLink{
			ID:     "plink_789",
			URL:    "https://buy.stripe.test/plink_789",
			Active: true,
		})
	})
	defer server.Close()

	resp, err := client.CreatePaymentLink(context.Background(), "price_456", 1, map[string]string{
		"fan_email": "a@x.com",
		"fan_name":  "A",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://buy.stripe.test/plink_789", resp.URL)
}

func TestClient_ListCheckoutSessions(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "500", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(List[CheckoutSession]{
			Object: "list",
			Data: []CheckoutSession{
				{ID: "cs_1", AmountTotal: 2500, Metadata: map[string]string{"fan_email": "a@x.com", "fan_name": "A"}},
			},
		})
	})
	defer server.Close()

	resp, err := client.ListCheckoutSessions(context.Background(), 500)

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.EqualValues(t, 2500, resp.Data[0].AmountTotal)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"No such price: price_nope"}}`))
	})
	defer server.Close()

	_, err := client.CreatePaymentLink(context.Background(), "price_nope", 1, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "stripe returned 400")
	assert.Contains(t, err.Error(), "No such price")
}

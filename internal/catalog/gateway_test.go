package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/afrobeatles/fanstore/internal/stripe"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) (*Gateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := stripe.NewClient(zap.NewNop(), nil, server.URL, "sk_test_123")
	return New(zap.NewNop(), client), server
}

func TestGateway_FindProduct_Found(t *testing.T) {
	gw, server := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stripe.List[stripe.Product]{
			Data: []stripe.Product{{ID: "prod_123", Name: "The Afrobeatles T-Shirt"}},
		})
	})
	defer server.Close()

	product := gw.FindProduct(context.Background(), "challenge-42")

	require.NotNil(t, product)
	assert.Equal(t, "prod_123", product.ID)
	assert.Nil(t, product.Price, "price is attached by provisioning, not lookup")
}

func TestGateway_FindProduct_EmptyList(t *testing.T) {
	gw, server := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stripe.List[stripe.Product]{Data: []stripe.Product{}})
	})
	defer server.Close()

	assert.Nil(t, gw.FindProduct(context.Background(), "challenge-42"))
}

func TestGateway_FindProduct_RemoteErrorIsAbsence(t *testing.T) {
	gw, server := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key"}}`))
	})
	defer server.Close()

	// Lookup failures are logged and reported as not-found, never raised.
	assert.Nil(t, gw.FindProduct(context.Background(), "challenge-42"))
}

func TestGateway_FindPrice_Found(t *testing.T) {
	gw, server := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "prod_123", r.URL.Query().Get("product"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stripe.List[stripe.Price]{
			Data: []stripe.Price{{ID: "price_456", UnitAmount: 2500, Currency: "usd", LookupKey: "challenge-42"}},
		})
	})
	defer server.Close()

	price := gw.FindPrice(context.Background(), "prod_123", "challenge-42")

	require.NotNil(t, price)
	assert.Equal(t, "price_456", price.ID)
	assert.Equal(t, "challenge-42", price.LookupKey)
}

func TestGateway_FindPrice_RemoteErrorIsAbsence(t *testing.T) {
	gw, server := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
	})
	defer server.Close()

	assert.Nil(t, gw.FindPrice(context.Background(), "prod_123", "challenge-42"))
}

func TestGateway_CreateProduct_PropagatesError(t *testing.T) {
	gw, server := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"name is required"}}`))
	})
	defer server.Close()

	// Creation errors are real failures, unlike lookups.
	_, err := gw.CreateProduct(context.Background(), "", "", "challenge-42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestGateway_CreatePrice_Success(t *testing.T) {
	gw, server := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "true", r.PostForm.Get("transfer_lookup_key"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stripe.Price{ID: "price_456", UnitAmount: 2500, LookupKey: "challenge-42"})
	})
	defer server.Close()

	price, err := gw.CreatePrice(context.Background(), "prod_123", 2500, "usd", "The Afrobeatles T-Shirt", "challenge-42")

	require.NoError(t, err)
	assert.Equal(t, "price_456", price.ID)
	assert.EqualValues(t, 2500, price.UnitAmount)
}

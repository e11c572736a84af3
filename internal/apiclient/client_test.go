package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhikandeshmukh/po-tracker-sub001/internal/types"
)

func TestCreatePurchaseOrderSendsEnvelope(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody types.PurchaseOrder

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	client := New(srv.URL, "secret-token", time.Second)
	err := client.CreatePurchaseOrder(context.Background(), types.PurchaseOrder{
		PONumber: "PO-1",
		Items:    []types.POLineItem{{SKU: "SKU-1", POQuantity: 50}},
	})
	require.NoError(t, err)

	assert.Equal(t, "/purchase-orders", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "PO-1", gotBody.PONumber)
	require.Len(t, gotBody.Items, 1)
	assert.Equal(t, 50, gotBody.Items[0].POQuantity)
}

func TestErrorEnvelopeSurfacesDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error": map[string]any{
				"message": "vendor not found",
				"code":    "VENDOR_404",
				"details": map[string]any{"vendorId": "V-9"},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "", time.Second)
	err := client.CreateShipment(context.Background(), types.Shipment{ShipmentNumber: "SH-1"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "vendor not found", apiErr.Message)
	assert.Equal(t, "VENDOR_404", apiErr.Code)
	assert.Contains(t, err.Error(), "vendor not found")
	assert.Contains(t, err.Error(), "V-9")
}

func TestListVendorsDecodesData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/vendors", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]string{{"id": "V-1", "name": "Acme"}, {"id": "V-2", "name": "Globex"}},
		})
	}))
	defer srv.Close()

	vendors, err := New(srv.URL, "", time.Second).ListVendors(context.Background())
	require.NoError(t, err)

	require.Len(t, vendors, 2)
	assert.Equal(t, "V-1", vendors[0].ID)
	assert.Equal(t, "Globex", vendors[1].Name)
}

func TestFailureWithoutErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))
	defer srv.Close()

	err := New(srv.URL, "", time.Second).CreatePurchaseOrder(context.Background(), types.PurchaseOrder{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestMalformedResponseIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "", time.Second).ListTransporters(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response")
}

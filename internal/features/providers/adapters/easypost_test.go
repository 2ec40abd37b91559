package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	addressdomain "label-desk/internal/features/address/domain"
	labeldomain "label-desk/internal/features/labels/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasyPostAdapter_GetRates(t *testing.T) {
	var gotOptions interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shipments", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "ep_key", user)
		assert.Empty(t, pass)

		shipment := decodeBody(t, r)["shipment"].(map[string]interface{})
		gotOptions = shipment["options"]
		assert.Equal(t, 32.0, shipment["parcel"].(map[string]interface{})["weight"])

		w.Write([]byte(`{
			"id": "shp_ep",
			"rates": [
				{"id": "rate_a", "carrier": "USPS", "service": "Priority", "rate": "7.58", "currency": "USD", "delivery_days": 2, "shipment_id": "shp_ep"},
				{"id": "rate_b", "carrier": "FedEx", "service": "FEDEX_GROUND", "rate": "12.40", "currency": "USD"}
			]
		}`))
	}))
	defer ts.Close()

	adapter := NewEasyPostAdapter(ts.URL, "ep_key", testClient(), 0)

	quotes, err := adapter.GetRates(context.Background(), testRequest(), false)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Nil(t, gotOptions)

	assert.Equal(t, "easypost", quotes[0].Source)
	assert.Equal(t, "USPS", quotes[0].CarrierKey())
	assert.Equal(t, "Priority", quotes[0].ServiceKey())
	assert.Equal(t, 7.58, quotes[0].Amount)
	assert.Equal(t, "shp_ep", quotes[1].ShipmentID)

	_, err = adapter.GetRates(context.Background(), testRequest(), true)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"delivery_confirmation": "SIGNATURE"}, gotOptions)
}

func TestEasyPostAdapter_PurchaseLabel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rates/rate_a":
			w.Write([]byte(`{"id": "rate_a", "shipment_id": "shp_ep"}`))
		case "/shipments/shp_ep/buy":
			assert.Equal(t, http.MethodPost, r.Method)
			body := decodeBody(t, r)
			assert.Equal(t, map[string]interface{}{"id": "rate_a"}, body["rate"])
			w.Write([]byte(`{
				"id": "shp_ep", "tracking_code": "EZ1000",
				"postage_label": {"label_url": "https://ep/label.png"},
				"selected_rate": {"carrier": "USPS", "service": "Priority", "rate": "7.58", "currency": "USD"}
			}`))
		case "/shipments/shp_ep/label":
			assert.Equal(t, "pdf", r.URL.Query().Get("file_format"))
			w.Write([]byte(`{"postage_label": {"label_url": "https://ep/label.png", "label_pdf_url": "https://ep/label.pdf"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	adapter := NewEasyPostAdapter(ts.URL, "ep_key", testClient(), 0)

	label, err := adapter.PurchaseLabel(context.Background(), labeldomain.PurchaseRequest{QuoteID: "rate_a", Provider: "easypost", Format: "PDF"})
	require.NoError(t, err)
	assert.Equal(t, "EZ1000", label.TrackingNumber)
	assert.Equal(t, "https://ep/label.pdf", label.LabelURL)
	assert.Equal(t, "USPS", label.Carrier)
	assert.Equal(t, "Priority", label.Service)
	assert.Equal(t, 7.58, label.Cost)
}

func TestEasyPostAdapter_PurchaseLabel_ProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": {"code": "SHIPMENT.POSTAGE.FAILURE", "message": "Rate not found", "errors": []}}`))
	}))
	defer ts.Close()

	adapter := NewEasyPostAdapter(ts.URL, "ep_key", testClient(), 0)

	_, err := adapter.PurchaseLabel(context.Background(), labeldomain.PurchaseRequest{QuoteID: "rate_x", Provider: "easypost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rate not found")
}

func TestEasyPostAdapter_ValidateAddress(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.Equal(t, []interface{}{"delivery"}, body["verify"])
		w.Write([]byte(`{
			"street1": "123 MAIN ST", "city": "NEW YORK", "state": "NY", "zip": "10001", "country": "US",
			"verifications": {"delivery": {"success": false, "errors": [{"message": "Address not found"}]}}
		}`))
	}))
	defer ts.Close()

	adapter := NewEasyPostAdapter(ts.URL, "ep_key", testClient(), 0)

	result, err := adapter.ValidateAddress(context.Background(), testRequest().ToAddress)
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Address not found"}, result.Messages)
	assert.Nil(t, result.Suggested)
	assert.Equal(t, "easypost", result.Provider)
}

func TestToEasyPostParcel_Units(t *testing.T) {
	p := toEasyPostParcel(testRequest().Parcel)
	assert.Equal(t, 32.0, p.Weight)
	assert.Equal(t, 10.0, p.Length)

	metric := toEasyPostParcel(addressdomain.Parcel{Length: 25.4, Width: 25.4, Height: 5.08, DistanceUnit: "cm", Weight: 1, MassUnit: "kg"})
	assert.InDelta(t, 10.0, metric.Length, 1e-9)
	assert.InDelta(t, 2.0, metric.Height, 1e-9)
	assert.InDelta(t, 35.274, metric.Weight, 1e-9)
}

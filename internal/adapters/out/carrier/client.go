// Package carrier implements the ShipmentProvider port against the shipping
// carrier's REST API.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client talks to the carrier's REST API. All calls are authenticated with
// an API key header and bounded by the HTTP client's timeout.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a carrier API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type createShipmentRequest struct {
	OrderRef    string               `json:"order_ref"`
	PaymentMode string               `json:"payment_mode"`
	Consignee   consigneePayload     `json:"consignee"`
	Items       []itemPayload        `json:"items"`
	Parcel      parcelPayload        `json:"parcel"`
	Declared    declaredValuePayload `json:"declared_value"`
}

type consigneePayload struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
}

type itemPayload struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Units     int    `json:"units"`
}

type parcelPayload struct {
	WeightKg string `json:"weight_kg"`
	LengthCm string `json:"length_cm"`
	WidthCm  string `json:"width_cm"`
	HeightCm string `json:"height_cm"`
}

type declaredValuePayload struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

type createShipmentResponse struct {
	ShipmentID  string `json:"shipment_id"`
	TrackingID  string `json:"tracking_id"`
	CourierName string `json:"courier_name"`
}

type allocateTrackingRequest struct {
	CourierID string `json:"courier_id"`
}

type allocateTrackingResponse struct {
	TrackingID  string `json:"tracking_id"`
	CourierName string `json:"courier_name"`
}

// CreateShipment registers a shipment with the carrier.
func (c *Client) CreateShipment(ctx context.Context, req ports.ShipmentRequest) (ports.ShipmentResponse, error) {
	payload := createShipmentRequest{
		OrderRef:    req.OrderRef,
		PaymentMode: req.PaymentMode,
		Consignee: consigneePayload{
			FirstName:  req.Address.FirstName(),
			LastName:   req.Address.LastName(),
			Email:      req.Address.Email(),
			Phone:      req.Address.Phone(),
			Street:     req.Address.Street(),
			City:       req.Address.City(),
			State:      req.Address.State(),
			PostalCode: req.Address.PostalCode(),
		},
		Parcel: parcelPayload{
			WeightKg: formatAmount(req.WeightKg),
			LengthCm: formatAmount(req.LengthCm),
			WidthCm:  formatAmount(req.WidthCm),
			HeightCm: formatAmount(req.HeightCm),
		},
		Declared: declaredValuePayload{
			Subtotal: formatAmount(req.Amounts.Subtotal()),
			Shipping: formatAmount(req.Amounts.Shipping()),
			Total:    formatAmount(req.Amounts.Total()),
		},
	}
	for _, item := range req.Items {
		payload.Items = append(payload.Items, itemPayload{
			SKU:       item.ProductID(),
			Name:      item.Name(),
			UnitPrice: formatAmount(item.UnitPrice()),
			Units:     item.Quantity(),
		})
	}

	var resp createShipmentResponse
	if err := c.post(ctx, "/shipments", payload, &resp); err != nil {
		return ports.ShipmentResponse{}, err
	}

	return ports.ShipmentResponse{
		ShipmentID:  resp.ShipmentID,
		TrackingID:  resp.TrackingID,
		CourierName: resp.CourierName,
	}, nil
}

// AllocateTracking requests an AWB for an existing shipment.
func (c *Client) AllocateTracking(ctx context.Context, shipmentID, courierID string) (ports.TrackingAllocation, error) {
	var resp allocateTrackingResponse
	err := c.post(ctx, "/shipments/"+shipmentID+"/awb", allocateTrackingRequest{CourierID: courierID}, &resp)
	if err != nil {
		return ports.TrackingAllocation{}, err
	}

	return ports.TrackingAllocation{
		TrackingID:  resp.TrackingID,
		CourierName: resp.CourierName,
	}, nil
}

// SchedulePickup asks the carrier to schedule a pickup for the shipment.
func (c *Client) SchedulePickup(ctx context.Context, shipmentID string) error {
	return c.post(ctx, "/shipments/"+shipmentID+"/pickup", struct{}{}, nil)
}

// post sends a JSON POST to the carrier and decodes the response into out
// when out is non-nil. Non-2xx responses become errors carrying the status
// and a body snippet.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("carrier %s returned %d: %s", path, resp.StatusCode, snippet)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

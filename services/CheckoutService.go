package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"bakeShop/models"
)

// CheckoutService turns the current cart into an order at the order-creation
// endpoint. It never retries on its own; a failed submission leaves the cart
// exactly as it was so the user can correct and resubmit.
type CheckoutService struct {
	endpoint string
	client   *http.Client
}

func NewCheckoutService(endpoint string, client *http.Client) CheckoutService {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return CheckoutService{
		endpoint: endpoint,
		client:   client,
	}
}

// SubmitOrder snapshots the cart at call time, POSTs the payload and
// reconciles local state with the outcome. The cart is cleared and the drawer
// closed only on a confirmed success; any failure leaves every line untouched.
func (cs *CheckoutService) SubmitOrder(cart *CartStore) (orderNumber string, err error) {
	items := cart.Items()
	if len(items) == 0 {
		err = fmt.Errorf("%w: cart is empty", models.ErrValidation)
		return
	}

	// The payload is built from the snapshot, not re-read from the store, so
	// the submitted order reflects what the user saw when they clicked submit
	// even if the cart changes while the request is in flight.
	payload := models.OrderPayload{
		Items:     make([]models.OrderPayloadItem, 0, len(items)),
		OrderDate: time.Now().UTC().Format(time.RFC3339),
		Status:    "pending",
	}
	for _, l := range items {
		item := models.OrderPayloadItem{
			ProductId:   l.Product.ProductId,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			Price:       l.UnitPrice(),
			Total:       l.LineTotal(),
		}
		payload.TotalPrice = payload.TotalPrice + item.Total
		payload.Items = append(payload.Items, item)
	}

	body, e := json.Marshal(payload)
	if e != nil {
		log.Printf("SubmitOrder marshal: %v", e)
		err = models.ErrServerError
		return
	}

	resp, e := cs.client.Post(cs.endpoint, "application/json", bytes.NewReader(body))
	if e != nil {
		log.Printf("SubmitOrder: %v", e)
		err = fmt.Errorf("%w: order service unreachable", models.ErrSubmission)
		return
	}
	defer resp.Body.Close()

	raw, e := io.ReadAll(resp.Body)
	if e != nil {
		log.Printf("SubmitOrder read body: %v", e)
		err = fmt.Errorf("%w: %s", models.ErrSubmission, resp.Status)
		return
	}

	var parsed models.OrderResponse
	parseErr := json.Unmarshal(raw, &parsed)

	success := resp.StatusCode >= 200 && resp.StatusCode < 300 &&
		parseErr == nil && parsed.Success && parsed.Order != nil && parsed.Order.OrderNumber != ""
	if !success {
		err = fmt.Errorf("%w: %s", models.ErrSubmission, failureReason(parsed, parseErr, resp.Status))
		return
	}

	orderNumber = parsed.Order.OrderNumber
	cart.Clear()
	cart.CloseCart()
	return
}

// failureReason picks the most specific message available: the error field of
// the response body, then the HTTP status line, then a generic fallback.
func failureReason(parsed models.OrderResponse, parseErr error, status string) string {
	if parseErr == nil && parsed.Error != "" {
		return parsed.Error
	}
	if status != "" {
		return status
	}
	return "order could not be placed"
}

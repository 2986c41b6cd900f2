package models

import (
	"database/sql"
	"errors"
	"time"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnauthorized = errors.New("unauthorized")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")

// Cart/order core taxonomy.
var ErrValidation = errors.New("validation failed")
var ErrPersistence = errors.New("persistence failed")
var ErrSubmission = errors.New("order submission failed")

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type CustomerData struct {
	Id    int
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AddToCartRequest is the storefront intent to put a product in the cart.
type AddToCartRequest struct {
	ProductId int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Variant   *string `json:"variant,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

type UpdateCartItemRequest struct {
	LineId   string `json:"lineId"`
	Quantity int    `json:"quantity"`
}

type RemoveCartItemRequest struct {
	LineId string `json:"lineId"`
}

// OrderPayload is the exact wire shape POSTed to the order-creation endpoint.
type OrderPayload struct {
	Items      []OrderPayloadItem `json:"items"`
	TotalPrice float64            `json:"totalPrice"`
	OrderDate  string             `json:"orderDate"`
	Status     string             `json:"status"`
}

type OrderPayloadItem struct {
	ProductId   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type OrderResponse struct {
	Success bool               `json:"success"`
	Order   *OrderConfirmation `json:"order,omitempty"`
	Error   string             `json:"error,omitempty"`
}

type OrderConfirmation struct {
	OrderNumber string `json:"order_number"`
}

type OrderSearchData struct {
	Status     *string
	CustomerId *int
}

type Order_db struct {
	Id          int
	OrderNumber string
	CustomerId  sql.NullInt64
	Date        time.Time
	TotalPrice  float64
	Status      string
}

type OrdersProducts_db struct {
	Id          int
	OrderId     int
	ProductId   int
	ProductName string
	Quantity    int
	Price       float64
}

type Customer_db struct {
	Id       int
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

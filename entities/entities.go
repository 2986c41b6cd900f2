package entities

import "time"

type Product struct {
	Id          int
	Slug        string
	Name        string
	Category    string
	Price       float64
	Description string
	Image       string
	Available   bool
	Variants    []ProductVariant
}

type ProductVariant struct {
	Name       string  `json:"name"`
	PriceDelta float64 `json:"priceDelta"`
}

// ProductSnapshot is the denormalized slice of a product captured at add-time,
// so cart lines keep rendering even if the catalog changes afterwards.
type ProductSnapshot struct {
	ProductId int     `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
}

type CartLineItem struct {
	Id       string          `json:"id"`
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
	Variant  *ProductVariant `json:"variant,omitempty"`
	Notes    string          `json:"notes,omitempty"`
	AddedAt  time.Time       `json:"addedAt"`
}

// UnitPrice is the line's effective unit price: the snapshotted product price
// adjusted by the selected variant, if any.
func (l CartLineItem) UnitPrice() float64 {
	price := l.Product.UnitPrice
	if l.Variant != nil {
		price = price + l.Variant.PriceDelta
	}
	return price
}

func (l CartLineItem) LineTotal() float64 {
	return l.UnitPrice() * float64(l.Quantity)
}

type CartLineView struct {
	Id           string  `json:"id"`
	ProductId    int     `json:"productId"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	LineTotal    float64 `json:"lineTotal"`
	PriceDisplay string  `json:"priceDisplay,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

type CartView struct {
	Lines        []CartLineView `json:"lines"`
	TotalItems   int            `json:"totalItems"`
	TotalPrice   float64        `json:"totalPrice"`
	TotalDisplay string         `json:"totalDisplay,omitempty"`
	IsOpen       bool           `json:"isOpen"`
}

type OrderLine struct {
	ProductId   int
	ProductName string
	Quantity    int
	Price       float64
	Total       float64
}

type Order struct {
	OrderId     int
	OrderNumber string
	Date        time.Time
	Status      string
	TotalPrice  float64
	Customer    OrderCustomer
	Products    []OrderLine
}

type OrderCustomer struct {
	Id    int
	Email string
	Name  string
}

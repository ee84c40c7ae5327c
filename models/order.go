package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a priced snapshot of one configured product in a cart or
// order. Price and TotalPrice are per unit; TotalPrice includes the active
// surcharges. VariantID identifies the exact configuration.
type LineItem struct {
	ProductID        string            `json:"_id"`
	Name             string            `json:"name"`
	Image            string            `json:"image"`
	Price            decimal.Decimal   `json:"price"`
	TotalPrice       decimal.Decimal   `json:"totalPrice"`
	Qty              int               `json:"qty"`
	VariantID        string            `json:"variantId"`
	Variations       []Variation       `json:"variations"`
	Personalizations []Personalization `json:"personalizations"`
}

// ShippingAddress is the delivery destination of an order.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PaymentResult records the outcome reported by the payment provider.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
}

// Order is a placed order with its priced line items and totals. Totals are
// always recomputed server side from the stored product templates.
type Order struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"user"`
	OrderItems      []LineItem      `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty"`
	ItemsPrice      decimal.Decimal `json:"itemsPrice"`
	ShippingPrice   decimal.Decimal `json:"shippingPrice"`
	TaxPrice        decimal.Decimal `json:"taxPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDispatched    bool            `json:"isDispatched"`
	DispatchedAt    *time.Time      `json:"dispatchedAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`

	// Denormalized owner fields for the admin list view.
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
}

// OrderItemInput is one cart line as submitted by the client. Only the
// product id, quantity and chosen selections are trusted; pricing is redone
// against the stored template.
type OrderItemInput struct {
	ProductID        string            `json:"_id"`
	Qty              int               `json:"qty"`
	Variations       []Variation       `json:"variations"`
	Personalizations []Personalization `json:"personalizations"`
}

// CreateOrderRequest is the body of POST /api/orders.
//
// Example request:
//
//	{
//		"orderItems": [{"_id": "...", "qty": 2, "variations": [...]}],
//		"shippingAddress": {"address": "1 Fern Lane", "city": "Leeds", "postalCode": "LS1 1AA", "country": "GB"},
//		"paymentMethod": "PayPal",
//		"shippingPrice": 4.50,
//		"taxPrice": 0
//	}
type CreateOrderRequest struct {
	OrderItems      []OrderItemInput `json:"orderItems"`
	ShippingAddress ShippingAddress  `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
	ShippingPrice   decimal.Decimal  `json:"shippingPrice"`
	TaxPrice        decimal.Decimal  `json:"taxPrice"`
	PaymentResult   *PaymentResult   `json:"paymentResult,omitempty"`
}

// ResolveLineItemRequest is the body of POST /api/products/{id}/resolve.
type ResolveLineItemRequest struct {
	Qty              int               `json:"qty"`
	Variations       []Variation       `json:"variations"`
	Personalizations []Personalization `json:"personalizations"`
}

// OrderTotals is the server-computed money breakdown of a cart.
type OrderTotals struct {
	ItemsPrice    decimal.Decimal `json:"itemsPrice"`
	ShippingPrice decimal.Decimal `json:"shippingPrice"`
	TaxPrice      decimal.Decimal `json:"taxPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

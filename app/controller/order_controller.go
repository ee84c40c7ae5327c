package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"fern-and-paper/app/middleware"
	"fern-and-paper/logger"
	"fern-and-paper/models"
	"fern-and-paper/pricing"
	"fern-and-paper/repository"
)

// OrderController handles HTTP requests for orders
type OrderController struct {
	orders   repository.OrderRepositoryInterface
	products repository.ProductRepositoryInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(orders repository.OrderRepositoryInterface, products repository.ProductRepositoryInterface) *OrderController {
	return &OrderController{orders: orders, products: products}
}

// Create handles POST /api/orders
// Every line item is re-resolved against the stored template, so client
// supplied prices never reach the order
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	logger.L.Infof("📥 CreateOrder: user=%s", user.ID)

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.ShippingPrice.IsNegative() {
		writeError(w, models.NewValidationError("shipping price cannot be negative"))
		return
	}
	if req.TaxPrice.IsNegative() {
		writeError(w, models.NewValidationError("tax price cannot be negative"))
		return
	}

	if len(req.OrderItems) == 0 {
		http.Error(w, "No order items", http.StatusBadRequest)
		return
	}

	items := make([]models.LineItem, 0, len(req.OrderItems))
	for _, input := range req.OrderItems {
		product, err := c.products.GetByID(r.Context(), input.ProductID)
		if err != nil {
			writeError(w, err)
			return
		}

		variations, personalizations, err := pricing.ApplySelections(product, input.Variations, input.Personalizations)
		if err != nil {
			writeError(w, err)
			return
		}

		item, err := pricing.ResolveLineItem(product, variations, personalizations, input.Qty)
		if err != nil {
			writeError(w, err)
			return
		}
		items = append(items, *item)
	}

	totals := pricing.AggregateOrderTotals(items, req.ShippingPrice, req.TaxPrice)

	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      totals.ItemsPrice,
		ShippingPrice:   totals.ShippingPrice,
		TaxPrice:        totals.TaxPrice,
		TotalPrice:      totals.TotalPrice,
		CreatedAt:       time.Now().UTC(),
		UserName:        user.Name,
		UserEmail:       user.Email,
	}

	// An inline payment result marks the order paid on creation.
	if req.PaymentResult != nil {
		now := time.Now().UTC()
		order.PaymentResult = req.PaymentResult
		order.IsPaid = true
		order.PaidAt = &now
	}

	if err := c.orders.Create(r.Context(), order); err != nil {
		writeError(w, err)
		return
	}

	logger.L.Infof("✅ CreateOrder: order=%s total=%s", order.ID, order.TotalPrice.StringFixed(2))
	writeJSON(w, http.StatusCreated, order)
}

// MyOrders handles GET /api/orders/myorders
func (c *OrderController) MyOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := middleware.UserFromContext(r.Context())
	orders, err := c.orders.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// List handles GET /api/orders (admin)
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/orders/{id}
// Owners see their own orders; admins see every order
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request, id string) {
	user := middleware.UserFromContext(r.Context())

	order, err := c.orders.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if order.UserID != user.ID && !user.IsAdmin {
		http.Error(w, "Not authorized", http.StatusForbidden)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Pay handles POST /api/orders/{id}/pay
func (c *OrderController) Pay(w http.ResponseWriter, r *http.Request, id string) {
	user := middleware.UserFromContext(r.Context())
	logger.L.Infof("📥 Pay: order=%s user=%s", id, user.ID)

	var result models.PaymentResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	order, err := c.orders.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if order.UserID != user.ID && !user.IsAdmin {
		http.Error(w, "Not authorized", http.StatusForbidden)
		return
	}

	updated, err := c.orders.MarkPaid(r.Context(), id, result)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.L.Infof("✅ Pay: order=%s paid", id)
	writeJSON(w, http.StatusOK, updated)
}

// Dispatch handles POST /api/orders/{id}/dispatch (admin)
func (c *OrderController) Dispatch(w http.ResponseWriter, r *http.Request, id string) {
	logger.L.Infof("📥 Dispatch: order=%s", id)

	updated, err := c.orders.MarkDispatched(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.L.Infof("✅ Dispatch: order=%s dispatched", id)
	writeJSON(w, http.StatusOK, updated)
}

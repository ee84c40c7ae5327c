package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fern-and-paper/app/middleware"
	"fern-and-paper/models"
	"fern-and-paper/repository"
)

type stubOrderRepo struct {
	created int
}

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) error {
	s.created++
	return nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return nil, models.ErrNotFound
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) ListAll(ctx context.Context) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) MarkPaid(ctx context.Context, id string, result models.PaymentResult) (*models.Order, error) {
	return nil, models.ErrNotFound
}

func (s *stubOrderRepo) MarkDispatched(ctx context.Context, id string) (*models.Order, error) {
	return nil, models.ErrNotFound
}

type stubProductRepo struct {
	product *models.Product
}

func (s *stubProductRepo) List(ctx context.Context, params repository.ProductListParams) (*models.ProductListResponse, error) {
	return &models.ProductListResponse{Page: 1, Pages: 1}, nil
}

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if s.product != nil && s.product.ID == id {
		return s.product, nil
	}
	return nil, models.ErrNotFound
}

func (s *stubProductRepo) CreateSample(ctx context.Context, userID string) (*models.Product, error) {
	return nil, models.ErrNotFound
}

func (s *stubProductRepo) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	return nil, models.ErrNotFound
}

func (s *stubProductRepo) Delete(ctx context.Context, id string) error {
	return models.ErrNotFound
}

func (s *stubProductRepo) Top(ctx context.Context, limit int) ([]models.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) Categories(ctx context.Context) (*models.CategoriesResponse, error) {
	return &models.CategoriesResponse{}, nil
}

func (s *stubProductRepo) AddReview(ctx context.Context, productID string, review models.Review) (*models.Product, error) {
	return nil, models.ErrNotFound
}

func postOrder(t *testing.T, controller *OrderController, req models.CreateOrderRequest) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	r = r.WithContext(middleware.ContextWithUser(r.Context(),
		&models.User{ID: "u1", Name: "Ana", Email: "ana@example.com"}))
	w := httptest.NewRecorder()
	controller.Create(w, r)
	return w
}

func notebookTemplate() *models.Product {
	price, _ := decimal.NewFromString("12.50")
	return &models.Product{
		ID:           "p1",
		Name:         "Botanical Notebook",
		Price:        price,
		CountInStock: 5,
		Images:       []string{"/images/notebook.jpg"},
	}
}

func TestCreateOrderRejectsNegativeShippingAndTax(t *testing.T) {
	orders := &stubOrderRepo{}
	controller := NewOrderController(orders, &stubProductRepo{product: notebookTemplate()})

	base := models.CreateOrderRequest{
		OrderItems:    []models.OrderItemInput{{ProductID: "p1", Qty: 1}},
		PaymentMethod: "PayPal",
	}

	negShipping := base
	negShipping.ShippingPrice = decimal.NewFromInt(-1)
	w := postOrder(t, controller, negShipping)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "shipping")

	negTax := base
	negTax.TaxPrice = decimal.NewFromInt(-1)
	w = postOrder(t, controller, negTax)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "tax")

	assert.Equal(t, 0, orders.created, "rejected order must never be persisted")
}

func TestCreateOrderAcceptsZeroShippingAndTax(t *testing.T) {
	orders := &stubOrderRepo{}
	controller := NewOrderController(orders, &stubProductRepo{product: notebookTemplate()})

	w := postOrder(t, controller, models.CreateOrderRequest{
		OrderItems:    []models.OrderItemInput{{ProductID: "p1", Qty: 2}},
		PaymentMethod: "PayPal",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, orders.created)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, "25", order.TotalPrice.String())
}

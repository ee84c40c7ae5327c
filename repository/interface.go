package repository

import (
	"context"

	"fern-and-paper/models"
)

// ProductListParams carries the catalog list filters.
type ProductListParams struct {
	Keyword     string
	Category    string
	SubCategory string
	Sort        string
	Page        int
}

// ProductRepositoryInterface defines the contract for product repository operations
type ProductRepositoryInterface interface {
	List(ctx context.Context, params ProductListParams) (*models.ProductListResponse, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	CreateSample(ctx context.Context, userID string) (*models.Product, error)
	Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Top(ctx context.Context, limit int) ([]models.Product, error)
	Categories(ctx context.Context) (*models.CategoriesResponse, error)
	AddReview(ctx context.Context, productID string, review models.Review) (*models.Product, error)
}

// OrderRepositoryInterface defines the contract for order repository operations
type OrderRepositoryInterface interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	MarkPaid(ctx context.Context, id string, result models.PaymentResult) (*models.Order, error)
	MarkDispatched(ctx context.Context, id string) (*models.Order, error)
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, name, email, passwordHash string) (*models.User, error)
	Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id string) error
}

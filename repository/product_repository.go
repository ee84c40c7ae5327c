package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fern-and-paper/db"
	"fern-and-paper/logger"
	"fern-and-paper/models"
)

// ProductPageSize is the fixed catalog page size.
const ProductPageSize = 10

// sortColumns whitelists the sortable fields of the catalog list.
var sortColumns = map[string]string{
	"price":      "price",
	"rating":     "rating",
	"createdAt":  "created_at",
	"name":       "name",
	"numReviews": "num_reviews",
}

// ProductRepository handles database operations for products
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `id, user_id, name, category, sub_category, tags, images, description,
	price, count_in_stock, variations, personalizations, reviews, rating, num_reviews, created_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	var p models.Product
	var tags, images, variations, personalizations, reviews []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Category, &p.SubCategory,
		&tags, &images, &p.Description,
		&p.Price, &p.CountInStock,
		&variations, &personalizations, &reviews,
		&p.Rating, &p.NumReviews, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, col := range []struct {
		raw  []byte
		dest interface{}
	}{
		{tags, &p.Tags},
		{images, &p.Images},
		{variations, &p.Variations},
		{personalizations, &p.Personalizations},
		{reviews, &p.Reviews},
	} {
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			return nil, fmt.Errorf("failed to decode product document: %w", err)
		}
	}
	return &p, nil
}

func mustJSON(v interface{}) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

// List returns one page of the catalog, filtered by keyword and category and
// ordered by the requested sort. Sort takes the form "field_asc" or
// "field_desc"; unknown fields fall back to newest first.
func (r *ProductRepository) List(ctx context.Context, params ProductListParams) (*models.ProductListResponse, error) {
	logger.L.Infof("📦 List products: keyword=%q category=%q sub=%q sort=%q page=%d",
		params.Keyword, params.Category, params.SubCategory, params.Sort, params.Page)

	where := "WHERE 1=1"
	args := []interface{}{}
	if params.Keyword != "" {
		args = append(args, "%"+params.Keyword+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if params.Category != "" {
		args = append(args, params.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if params.SubCategory != "" {
		args = append(args, params.SubCategory)
		where += fmt.Sprintf(" AND sub_category = $%d", len(args))
	}

	var total int
	if err := db.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM products "+where, args...).Scan(&total); err != nil {
		logger.L.Errorf("❌ Error counting products: %v", err)
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	orderBy := "created_at DESC"
	if params.Sort != "" {
		field, dir := params.Sort, "asc"
		if n := len(params.Sort); n > 5 && params.Sort[n-5:] == "_desc" {
			field, dir = params.Sort[:n-5], "desc"
		} else if n > 4 && params.Sort[n-4:] == "_asc" {
			field = params.Sort[:n-4]
		}
		if col, ok := sortColumns[field]; ok {
			orderBy = col + " " + dir
		}
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	args = append(args, ProductPageSize, (page-1)*ProductPageSize)
	query := fmt.Sprintf("SELECT %s FROM products %s ORDER BY %s LIMIT $%d OFFSET $%d",
		productColumns, where, orderBy, len(args)-1, len(args))

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.L.Errorf("❌ Error listing products: %v", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	pages := int(math.Ceil(float64(total) / float64(ProductPageSize)))
	if pages < 1 {
		pages = 1
	}
	logger.L.Infof("✓ Found %d products (page %d of %d)", len(products), page, pages)

	return &models.ProductListResponse{Products: products, Page: page, Pages: pages}, nil
}

// GetByID fetches a single product template.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)
	p, err := scanProduct(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		logger.L.Errorf("❌ Error fetching product %s: %v", id, err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// CreateSample inserts a blank template for the admin to fill in afterwards.
func (r *ProductRepository) CreateSample(ctx context.Context, userID string) (*models.Product, error) {
	product := &models.Product{
		ID:               uuid.NewString(),
		UserID:           userID,
		Name:             "Sample name",
		Category:         "Sample category",
		Images:           []string{"/images/sample.jpg"},
		Description:      "Sample description",
		Price:            decimal.Zero,
		Tags:             []string{},
		Variations:       []models.Variation{},
		Personalizations: []models.Personalization{},
		Reviews:          []models.Review{},
		Rating:           decimal.Zero,
		CreatedAt:        time.Now().UTC(),
	}

	query := `
		INSERT INTO products (id, user_id, name, category, sub_category, tags, images, description,
			price, count_in_stock, variations, personalizations, reviews, rating, num_reviews, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := db.DB.ExecContext(ctx, query,
		product.ID, product.UserID, product.Name, product.Category, product.SubCategory,
		mustJSON(product.Tags), mustJSON(product.Images), product.Description,
		product.Price, product.CountInStock,
		mustJSON(product.Variations), mustJSON(product.Personalizations), mustJSON(product.Reviews),
		product.Rating, product.NumReviews, product.CreatedAt,
	)
	if err != nil {
		logger.L.Errorf("❌ Error creating product: %v", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.L.Infof("✓ Created product %s", product.ID)
	return product, nil
}

// Update applies a partial edit inside a transaction, so concurrent edits of
// the same template never interleave.
func (r *ProductRepository) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1 FOR UPDATE", productColumns)
	product, err := scanProduct(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.SubCategory != nil {
		product.SubCategory = *req.SubCategory
	}
	if req.Tags != nil {
		product.Tags = *req.Tags
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.CountInStock != nil {
		product.CountInStock = *req.CountInStock
	}
	if req.Variations != nil {
		product.Variations = *req.Variations
	}
	if req.Personalizations != nil {
		product.Personalizations = *req.Personalizations
	}

	updateQuery := `
		UPDATE products SET name = $2, category = $3, sub_category = $4, tags = $5, images = $6,
			description = $7, price = $8, count_in_stock = $9, variations = $10, personalizations = $11
		WHERE id = $1
	`
	_, err = tx.ExecContext(ctx, updateQuery,
		id, product.Name, product.Category, product.SubCategory,
		mustJSON(product.Tags), mustJSON(product.Images), product.Description,
		product.Price, product.CountInStock,
		mustJSON(product.Variations), mustJSON(product.Personalizations),
	)
	if err != nil {
		logger.L.Errorf("❌ Error updating product %s: %v", id, err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.L.Infof("✓ Updated product %s", id)
	return product, nil
}

// Delete removes a product template.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		logger.L.Errorf("❌ Error deleting product %s: %v", id, err)
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	logger.L.Infof("✓ Deleted product %s", id)
	return nil
}

// Top returns the highest rated products for the storefront carousel.
func (r *ProductRepository) Top(ctx context.Context, limit int) ([]models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products ORDER BY rating DESC LIMIT $1", productColumns)
	rows, err := db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		logger.L.Errorf("❌ Error fetching top products: %v", err)
		return nil, fmt.Errorf("failed to get top products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// Categories returns the distinct parent and sub categories of the catalog.
func (r *ProductRepository) Categories(ctx context.Context) (*models.CategoriesResponse, error) {
	response := &models.CategoriesResponse{Parent: []string{}, Sub: []string{}}

	rows, err := db.DB.QueryContext(ctx,
		"SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		response.Parent = append(response.Parent, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subRows, err := db.DB.QueryContext(ctx,
		"SELECT DISTINCT sub_category FROM products WHERE sub_category <> '' ORDER BY sub_category")
	if err != nil {
		return nil, fmt.Errorf("failed to get sub categories: %w", err)
	}
	defer subRows.Close()
	for subRows.Next() {
		var c string
		if err := subRows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan sub category: %w", err)
		}
		response.Sub = append(response.Sub, c)
	}
	return response, subRows.Err()
}

// AddReview appends a review under a row lock and persists the recomputed
// rating aggregate atomically.
func (r *ProductRepository) AddReview(ctx context.Context, productID string, review models.Review) (*models.Product, error) {
	logger.L.Infof("📥 AddReview: product=%s user=%s rating=%d", productID, review.UserID, review.Rating)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1 FOR UPDATE", productColumns)
	product, err := scanProduct(tx.QueryRowContext(ctx, query, productID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}

	if err := product.AddReview(review); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE products SET reviews = $2, rating = $3, num_reviews = $4 WHERE id = $1",
		productID, mustJSON(product.Reviews), product.Rating, product.NumReviews)
	if err != nil {
		logger.L.Errorf("❌ Error saving review: %v", err)
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.L.Infof("✓ Review saved: product=%s rating now %s over %d reviews",
		productID, product.Rating.String(), product.NumReviews)
	return product, nil
}

package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fern-and-paper/app/middleware"
	"fern-and-paper/logger"
	"fern-and-paper/models"
	"fern-and-paper/pricing"
	"fern-and-paper/repository"
)

// ProductController handles HTTP requests for the catalog
type ProductController struct {
	repository repository.ProductRepositoryInterface
}

// NewProductController creates a new ProductController
func NewProductController(repo repository.ProductRepositoryInterface) *ProductController {
	return &ProductController{repository: repo}
}

// List handles GET /api/products
// Supports keyword, category, subCategory, sort and page query parameters
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	logger.L.Infof("📥 List: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))

	response, err := c.repository.List(r.Context(), repository.ProductListParams{
		Keyword:     q.Get("keyword"),
		Category:    q.Get("category"),
		SubCategory: q.Get("subCategory"),
		Sort:        q.Get("sort"),
		Page:        page,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// Top handles GET /api/products/top
func (c *ProductController) Top(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	products, err := c.repository.Top(r.Context(), 3)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Categories handles GET /api/products/categories
func (c *ProductController) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	categories, err := c.repository.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// Get handles GET /api/products/{id}
// The returned template includes freshly reset selection state so the
// storefront can configure it without mutating shared data.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request, id string) {
	logger.L.Infof("📥 Get: product=%s", id)

	product, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	product.Variations, product.Personalizations = pricing.DeriveSelections(product)
	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products (admin)
// Creates a sample template the admin edits afterwards
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	logger.L.Infof("📥 Create: admin=%s", user.ID)

	product, err := c.repository.CreateSample(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id} (admin)
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request, id string) {
	logger.L.Infof("📥 Update: product=%s", id)

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	product, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id} (admin)
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request, id string) {
	logger.L.Infof("📥 Delete: product=%s", id)

	if err := c.repository.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product removed"})
}

// CreateReview handles POST /api/products/{id}/reviews
func (c *ProductController) CreateReview(w http.ResponseWriter, r *http.Request, id string) {
	user := middleware.UserFromContext(r.Context())
	logger.L.Infof("📥 CreateReview: product=%s user=%s", id, user.ID)

	var req models.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	review := models.Review{
		Name:      user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}

	product, err := c.repository.AddReview(r.Context(), id, review)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.L.Infof("✅ CreateReview: product=%s now rated %s", id, product.Rating.String())
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Review added"})
}

// Resolve handles POST /api/products/{id}/resolve
// Prices one configured item server side and returns the cart line snapshot
func (c *ProductController) Resolve(w http.ResponseWriter, r *http.Request, id string) {
	logger.L.Infof("📥 Resolve: product=%s", id)

	var req models.ResolveLineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	product, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	variations, personalizations, err := pricing.ApplySelections(product, req.Variations, req.Personalizations)
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := pricing.ResolveLineItem(product, variations, personalizations, req.Qty)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.L.Infof("✅ Resolve: product=%s variant=%s unit=%s", id, item.VariantID, item.TotalPrice.StringFixed(2))
	writeJSON(w, http.StatusOK, item)
}

// ExtractProductID returns the id segment of /api/products/{id}[/suffix].
func ExtractProductID(path, suffix string) string {
	id := strings.TrimPrefix(path, "/api/products/")
	id = strings.TrimSuffix(id, suffix)
	return strings.Trim(id, "/")
}

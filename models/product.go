package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VariationOption is one choosable value of a variation axis, with the
// surcharge it adds on top of the product's base price.
type VariationOption struct {
	Name            string          `json:"name"`
	AdditionalPrice decimal.Decimal `json:"additionalPrice"`
	LinkedImage     *int            `json:"linkedImage,omitempty"`
}

// Variation is a configurable axis of a product (size, colour, material).
// Mandatory axes always contribute the surcharge of the selected option;
// optional axes contribute only while IsSelected is true.
type Variation struct {
	Name           string            `json:"name"`
	IsOptional     bool              `json:"isOptional"`
	IsSelected     bool              `json:"isSelected"`
	SelectedOption int               `json:"selectedOption"`
	Options        []VariationOption `json:"options"`
}

// Clone returns a deep copy so cart snapshots never alias template state.
func (v Variation) Clone() Variation {
	out := v
	out.Options = make([]VariationOption, len(v.Options))
	copy(out.Options, v.Options)
	return out
}

// Personalization is a free-text customization slot (engraving, gift note).
// The stored Value on a template is placeholder text for the UI.
type Personalization struct {
	Name            string          `json:"name"`
	IsOptional      bool            `json:"isOptional"`
	IsSelected      bool            `json:"isSelected"`
	Value           string          `json:"value"`
	AdditionalPrice decimal.Decimal `json:"additionalPrice"`
	LinkedImage     *int            `json:"linkedImage,omitempty"`
}

// Clone returns a copy of the personalization.
func (p Personalization) Clone() Personalization {
	return p
}

// Review is a customer rating plus comment attached to a product.
type Review struct {
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// Product is a catalog template: base price, stock, the variation and
// personalization axes a buyer can configure, and the review aggregate.
type Product struct {
	ID               string            `json:"_id"`
	UserID           string            `json:"user"`
	Name             string            `json:"name"`
	Category         string            `json:"category"`
	SubCategory      string            `json:"subCategory"`
	Tags             []string          `json:"tags"`
	Images           []string          `json:"images"`
	Description      string            `json:"description"`
	Price            decimal.Decimal   `json:"price"`
	CountInStock     int               `json:"countInStock"`
	Variations       []Variation       `json:"variations"`
	Personalizations []Personalization `json:"personalizations"`
	Reviews          []Review          `json:"reviews"`
	Rating           decimal.Decimal   `json:"rating"`
	NumReviews       int               `json:"numReviews"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// AddReview appends a review and recomputes the rating aggregate. One review
// per user per product; ratings are whole stars from 1 to 5.
func (p *Product) AddReview(review Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return NewValidationError("rating must be between 1 and 5, got %d", review.Rating)
	}
	for _, existing := range p.Reviews {
		if existing.UserID == review.UserID {
			return ErrDuplicateReview
		}
	}
	p.Reviews = append(p.Reviews, review)
	p.NumReviews = len(p.Reviews)

	sum := decimal.Zero
	for _, r := range p.Reviews {
		sum = sum.Add(decimal.NewFromInt(int64(r.Rating)))
	}
	// Stored at 2 decimal places, so compute at the same precision.
	p.Rating = sum.Div(decimal.NewFromInt(int64(len(p.Reviews)))).Round(2)
	return nil
}

// UpdateProductRequest carries a partial product update. Nil fields are left
// untouched.
//
// Example request:
//
//	{
//		"name": "Botanical Notebook",
//		"price": 12.50,
//		"countInStock": 25
//	}
type UpdateProductRequest struct {
	Name             *string            `json:"name"`
	Category         *string            `json:"category"`
	SubCategory      *string            `json:"subCategory"`
	Tags             *[]string          `json:"tags"`
	Images           *[]string          `json:"images"`
	Description      *string            `json:"description"`
	Price            *decimal.Decimal   `json:"price"`
	CountInStock     *int               `json:"countInStock"`
	Variations       *[]Variation       `json:"variations"`
	Personalizations *[]Personalization `json:"personalizations"`
}

// CreateReviewRequest is the body of POST /api/products/{id}/reviews.
//
// Example request:
//
//	{
//		"rating": 5,
//		"comment": "Beautiful paper, fast delivery"
//	}
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ProductListResponse is one page of catalog results.
type ProductListResponse struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}

// CategoriesResponse lists the distinct category tree of the catalog.
type CategoriesResponse struct {
	Parent []string `json:"parent"`
	Sub    []string `json:"sub"`
}

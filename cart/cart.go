// Package cart holds the value-based shopping cart operations. A cart is just
// a slice of resolved line items owned by the calling context (the client
// session persists it); every operation takes the current contents and
// returns the new contents, so nothing here carries state between requests.
package cart

import (
	"github.com/shopspring/decimal"

	"fern-and-paper/models"
)

// Add merges a resolved line item into the cart. A row already holding the
// same product with the same variant identity is updated to the new quantity
// (last write wins, matching a "change quantity" control rather than an "add
// more" one); otherwise the item is appended as a new row.
func Add(items []models.LineItem, newItem models.LineItem) []models.LineItem {
	for i, item := range items {
		if item.ProductID == newItem.ProductID && item.VariantID == newItem.VariantID {
			items[i].Qty = newItem.Qty
			return items
		}
	}
	return append(items, newItem)
}

// Remove deletes the line item matching both the product id and the variant
// identity. Other variants of the same product, and other products sharing
// the identity string, are left untouched. Removing an absent item is a
// no-op, not an error.
func Remove(items []models.LineItem, productID, variantID string) []models.LineItem {
	out := items[:0]
	for _, item := range items {
		if item.ProductID == productID && item.VariantID == variantID {
			continue
		}
		out = append(out, item)
	}
	return out
}

// ItemsTotal sums unit total price times quantity over the cart, rounded to
// 2 decimal places after summing.
func ItemsTotal(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	return total.Round(2)
}

package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fern-and-paper/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func item(productID, variantID string, qty int, total string) models.LineItem {
	return models.LineItem{
		ProductID:  productID,
		VariantID:  variantID,
		Qty:        qty,
		TotalPrice: dec(total),
	}
}

func TestAddAppendsDistinctVariants(t *testing.T) {
	t.Parallel()

	items := Add(nil, item("P1", "0-1", 1, "3.25"))
	items = Add(items, item("P1", "1-0", 1, "3.50"))

	require.Len(t, items, 2)
	assert.Equal(t, "0-1", items[0].VariantID)
	assert.Equal(t, "1-0", items[1].VariantID)
}

func TestAddSameVariantReplacesQuantity(t *testing.T) {
	t.Parallel()

	items := Add(nil, item("P1", "0-1", 2, "3.25"))
	items = Add(items, item("P1", "0-1", 5, "3.25"))

	require.Len(t, items, 1)
	// Last write wins: 5, not 7.
	assert.Equal(t, 5, items[0].Qty)
}

func TestRemoveMatchesOnProductAndVariant(t *testing.T) {
	t.Parallel()

	items := []models.LineItem{
		item("P1", "0-1", 1, "3.25"),
		item("P1", "1-0", 1, "3.50"),
		item("P2", "0-1", 1, "9.99"),
	}

	items = Remove(items, "P1", "0-1")

	require.Len(t, items, 2)
	// The other variant of P1 and the unrelated product sharing the identity
	// string both survive.
	assert.Equal(t, "P1", items[0].ProductID)
	assert.Equal(t, "1-0", items[0].VariantID)
	assert.Equal(t, "P2", items[1].ProductID)
}

func TestRemoveMissingItemIsNoOp(t *testing.T) {
	t.Parallel()

	items := []models.LineItem{item("P1", "0-1", 1, "3.25")}
	items = Remove(items, "P9", "0-1")
	assert.Len(t, items, 1)
}

func TestItemsTotal(t *testing.T) {
	t.Parallel()

	items := []models.LineItem{
		item("P1", "0", 2, "3.25"),
		item("P2", "1", 1, "599.99"),
	}
	assert.Equal(t, "606.49", ItemsTotal(items).StringFixed(2))
}

func TestItemsTotalEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.00", ItemsTotal(nil).StringFixed(2))
}

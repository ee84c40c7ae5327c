package pricing

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

// laptopTemplate mirrors a configurable product: one mandatory variation
// with a surcharged option, one optional personalization.
func laptopTemplate() *models.Product {
	return &models.Product{
		ID:           "p-laptop",
		Name:         "Refurbished Laptop",
		Images:       []string{"/uploads/laptop.jpg"},
		Price:        dec("599.99"),
		CountInStock: 10,
		Variations: []models.Variation{
			{
				Name: "Ram Size",
				Options: []models.VariationOption{
					{Name: "3GB", AdditionalPrice: decimal.Zero},
					{Name: "4GB", AdditionalPrice: dec("50")},
				},
			},
		},
		Personalizations: []models.Personalization{
			{
				Name:            "Engraving",
				IsOptional:      true,
				Value:           "Your text here",
				AdditionalPrice: dec("65"),
			},
		},
	}
}

func TestComputeUnitPrice(t *testing.T) {
	tests := []struct {
		name           string
		selectedOption int
		engraved       bool
		want           string
	}{
		{"upgrade and engraving", 1, true, "714.99"},
		{"upgrade only", 1, false, "649.99"},
		{"base configuration", 0, false, "599.99"},
		{"engraving only", 0, true, "664.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := laptopTemplate()
			variations, personalizations := DeriveSelections(product)
			variations[0].SelectedOption = tt.selectedOption
			personalizations[0].IsSelected = tt.engraved
			if tt.engraved {
				personalizations[0].Value = "For Sam"
			}

			got, err := ComputeUnitPrice(product.Price, variations, personalizations)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestComputeUnitPriceMandatoryAlwaysContributes(t *testing.T) {
	product := laptopTemplate()
	variations, personalizations := DeriveSelections(product)
	variations[0].SelectedOption = 1
	// Mandatory variations contribute regardless of the selected flag.
	variations[0].IsSelected = false

	got, err := ComputeUnitPrice(product.Price, variations, personalizations)
	require.NoError(t, err)
	assert.Equal(t, "649.99", got.StringFixed(2))
}

func TestComputeUnitPriceOptionalContributesOnlyWhenSelected(t *testing.T) {
	product := laptopTemplate()
	variations, personalizations := DeriveSelections(product)

	// A priced placeholder value alone never adds the surcharge.
	personalizations[0].Value = "For Sam"
	personalizations[0].IsSelected = false

	got, err := ComputeUnitPrice(product.Price, variations, personalizations)
	require.NoError(t, err)
	assert.Equal(t, "599.99", got.StringFixed(2))
}

func TestComputeUnitPriceRejectsBadSelections(t *testing.T) {
	product := laptopTemplate()

	t.Run("out of range option", func(t *testing.T) {
		variations, personalizations := DeriveSelections(product)
		variations[0].SelectedOption = 2
		_, err := ComputeUnitPrice(product.Price, variations, personalizations)
		assert.True(t, models.IsValidation(err))
	})

	t.Run("negative option", func(t *testing.T) {
		variations, personalizations := DeriveSelections(product)
		variations[0].SelectedOption = -1
		_, err := ComputeUnitPrice(product.Price, variations, personalizations)
		assert.True(t, models.IsValidation(err))
	})

	t.Run("zero options", func(t *testing.T) {
		variations := []models.Variation{{Name: "Empty"}}
		_, err := ComputeUnitPrice(product.Price, variations, nil)
		assert.True(t, models.IsValidation(err))
	})
}

func TestComputeUnitPriceRoundsHalfAwayFromZero(t *testing.T) {
	variations := []models.Variation{
		{
			Name:    "Finish",
			Options: []models.VariationOption{{Name: "Gloss", AdditionalPrice: dec("0.005")}},
		},
	}

	got, err := ComputeUnitPrice(dec("1.00"), variations, nil)
	require.NoError(t, err)
	assert.Equal(t, "1.01", got.StringFixed(2))
}

func TestDeriveSelectionsIsIndependentCopy(t *testing.T) {
	product := laptopTemplate()
	product.Variations[0].IsSelected = true
	product.Variations[0].SelectedOption = 1
	product.Personalizations[0].IsSelected = true

	variations, personalizations := DeriveSelections(product)

	assert.False(t, variations[0].IsSelected)
	assert.Equal(t, 0, variations[0].SelectedOption)
	assert.False(t, personalizations[0].IsSelected)
	assert.Equal(t, "Your text here", personalizations[0].Value)

	variations[0].Options[0].Name = "8GB"
	assert.Equal(t, "3GB", product.Variations[0].Options[0].Name)
}

func TestDeriveVariantIdentity(t *testing.T) {
	product := laptopTemplate()

	variations, personalizations := DeriveSelections(product)
	variations[0].SelectedOption = 1
	personalizations[0].IsSelected = true
	personalizations[0].Value = "For Sam"
	assert.Equal(t, "1-For Sam", DeriveVariantIdentity(variations, personalizations))

	variations, personalizations = DeriveSelections(product)
	variations[0].SelectedOption = 1
	assert.Equal(t, "1-~", DeriveVariantIdentity(variations, personalizations))
}

func TestDeriveVariantIdentityIgnoresInactiveState(t *testing.T) {
	product := laptopTemplate()
	variations, personalizations := DeriveSelections(product)

	// An unselected optional axis maps to the sentinel even when its value
	// still holds placeholder text.
	personalizations[0].Value = "stale draft"
	assert.Equal(t, "0-~", DeriveVariantIdentity(variations, personalizations))
}

func TestDeriveVariantIdentityEscapesFreeText(t *testing.T) {
	active := func(value string) []models.Personalization {
		return []models.Personalization{{Name: "Note", IsSelected: true, IsOptional: true, Value: value}}
	}

	// A literal "~" in free text stays distinct from the sentinel.
	literal := DeriveVariantIdentity(nil, active("~"))
	sentinel := DeriveVariantIdentity(nil, []models.Personalization{{Name: "Note", IsOptional: true}})
	assert.NotEqual(t, sentinel, literal)

	// Separator characters inside values cannot shift token boundaries.
	first := DeriveVariantIdentity(nil, append(active("a-b"), active("c")...))
	second := DeriveVariantIdentity(nil, append(active("a"), active("b-c")...))
	assert.NotEqual(t, first, second)
}

func TestApplySelectionsTrustsOnlyTemplatePrices(t *testing.T) {
	product := laptopTemplate()

	submitted := []models.Variation{
		{
			Name:           "Ram Size",
			SelectedOption: 1,
			// A tampered surcharge in the submitted axis is ignored.
			Options: []models.VariationOption{{Name: "3GB"}, {Name: "4GB", AdditionalPrice: dec("0.01")}},
		},
	}
	submittedPers := []models.Personalization{
		{Name: "Engraving", IsOptional: true, IsSelected: true, Value: "For Sam", AdditionalPrice: dec("0.01")},
	}

	variations, personalizations, err := ApplySelections(product, submitted, submittedPers)
	require.NoError(t, err)

	price, err := ComputeUnitPrice(product.Price, variations, personalizations)
	require.NoError(t, err)
	assert.Equal(t, "714.99", price.StringFixed(2))
	assert.Equal(t, "For Sam", personalizations[0].Value)
}

func TestApplySelectionsRejectsShapeMismatch(t *testing.T) {
	product := laptopTemplate()

	_, _, err := ApplySelections(product, nil, nil)
	assert.True(t, models.IsValidation(err))

	_, _, err = ApplySelections(product,
		[]models.Variation{{Name: "Ram Size"}},
		[]models.Personalization{{Name: "Engraving"}, {Name: "Extra"}})
	assert.True(t, models.IsValidation(err))
}

func TestResolveLineItem(t *testing.T) {
	product := laptopTemplate()
	variations, personalizations := DeriveSelections(product)
	variations[0].SelectedOption = 1
	personalizations[0].IsSelected = true
	personalizations[0].Value = "For Sam"

	item, err := ResolveLineItem(product, variations, personalizations, 2)
	require.NoError(t, err)

	assert.Equal(t, "p-laptop", item.ProductID)
	assert.Equal(t, "/uploads/laptop.jpg", item.Image)
	assert.Equal(t, "599.99", item.Price.StringFixed(2))
	assert.Equal(t, "714.99", item.TotalPrice.StringFixed(2))
	assert.Equal(t, 2, item.Qty)
	assert.Equal(t, "1-For Sam", item.VariantID)

	// The snapshot is isolated from later mutation of the inputs.
	variations[0].SelectedOption = 0
	variations[0].Options[1].Name = "16GB"
	assert.Equal(t, 1, item.Variations[0].SelectedOption)
	assert.Equal(t, "4GB", item.Variations[0].Options[1].Name)
}

func TestResolveLineItemValidatesQuantity(t *testing.T) {
	product := laptopTemplate()
	variations, personalizations := DeriveSelections(product)

	for _, qty := range []int{0, -3, 11} {
		_, err := ResolveLineItem(product, variations, personalizations, qty)
		assert.True(t, models.IsValidation(err), "qty %d should be rejected", qty)
	}
}

func TestAggregateOrderTotals(t *testing.T) {
	items := []models.LineItem{
		{TotalPrice: dec("3.25"), Qty: 2},
		{TotalPrice: dec("599.99"), Qty: 1},
	}

	totals := AggregateOrderTotals(items, decimal.Zero, decimal.Zero)
	assert.Equal(t, "606.49", totals.ItemsPrice.StringFixed(2))
	assert.Equal(t, "606.49", totals.TotalPrice.StringFixed(2))

	totals = AggregateOrderTotals(items, dec("4.50"), decimal.Zero)
	assert.Equal(t, "610.99", totals.TotalPrice.StringFixed(2))
}

func TestAggregateOrderTotalsRoundsOnceAtTheEnd(t *testing.T) {
	items := []models.LineItem{
		{TotalPrice: dec("0.005"), Qty: 1},
		{TotalPrice: dec("0.005"), Qty: 1},
	}

	totals := AggregateOrderTotals(items, decimal.Zero, decimal.Zero)
	// Per-line rounding would give 0.02; summing first gives 0.01.
	assert.Equal(t, "0.01", totals.ItemsPrice.StringFixed(2))
}

func TestAggregateOrderTotalsEmptyCart(t *testing.T) {
	totals := AggregateOrderTotals(nil, decimal.Zero, decimal.Zero)
	assert.Equal(t, "0.00", totals.ItemsPrice.StringFixed(2))
	assert.Equal(t, "0.00", totals.TotalPrice.StringFixed(2))
}

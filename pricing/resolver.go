// Package pricing resolves a configured product into a priced line item:
// unit price from base price plus active surcharges, a stable variant
// identity for cart merging, and order total aggregation.
package pricing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"fern-and-paper/models"
)

const (
	// notChosen marks an unselected optional axis inside a variant identity.
	notChosen = "~"
	// identitySeparator joins the per-axis tokens of a variant identity.
	identitySeparator = "-"
)

// DeriveSelections returns an independent copy of the product's variation
// and personalization axes reset to their defaults: nothing selected, first
// option chosen on every variation. Personalization values keep the
// template's placeholder text for the UI.
func DeriveSelections(product *models.Product) ([]models.Variation, []models.Personalization) {
	variations := make([]models.Variation, 0, len(product.Variations))
	for _, v := range product.Variations {
		clone := v.Clone()
		clone.IsSelected = false
		clone.SelectedOption = 0
		variations = append(variations, clone)
	}

	personalizations := make([]models.Personalization, 0, len(product.Personalizations))
	for _, p := range product.Personalizations {
		clone := p.Clone()
		clone.IsSelected = false
		personalizations = append(personalizations, clone)
	}

	return variations, personalizations
}

// ApplySelections copies the buyer's selection state onto fresh clones of
// the template's axes. Surcharges, option lists and placeholder metadata
// always come from the template; only IsSelected, SelectedOption and the
// personalization text are taken from the submitted axes. The submitted
// axes must match the template shape.
func ApplySelections(product *models.Product, variations []models.Variation, personalizations []models.Personalization) ([]models.Variation, []models.Personalization, error) {
	if len(variations) != len(product.Variations) {
		return nil, nil, models.NewValidationError("product %q expects %d variations, got %d",
			product.Name, len(product.Variations), len(variations))
	}
	if len(personalizations) != len(product.Personalizations) {
		return nil, nil, models.NewValidationError("product %q expects %d personalizations, got %d",
			product.Name, len(product.Personalizations), len(personalizations))
	}

	outVariations := make([]models.Variation, 0, len(variations))
	for i, template := range product.Variations {
		clone := template.Clone()
		clone.IsSelected = variations[i].IsSelected
		clone.SelectedOption = variations[i].SelectedOption
		outVariations = append(outVariations, clone)
	}

	outPersonalizations := make([]models.Personalization, 0, len(personalizations))
	for i, template := range product.Personalizations {
		clone := template.Clone()
		clone.IsSelected = personalizations[i].IsSelected
		clone.Value = personalizations[i].Value
		outPersonalizations = append(outPersonalizations, clone)
	}

	return outVariations, outPersonalizations, nil
}

// variationActive reports whether the axis contributes to price and
// identity. Mandatory axes always do.
func variationActive(v models.Variation) bool {
	return !v.IsOptional || v.IsSelected
}

func personalizationActive(p models.Personalization) bool {
	return !p.IsOptional || p.IsSelected
}

// ComputeUnitPrice returns the per-unit price of one configured item: the
// base price plus the surcharge of every active axis, rounded to 2 decimal
// places once at the end.
func ComputeUnitPrice(basePrice decimal.Decimal, variations []models.Variation, personalizations []models.Personalization) (decimal.Decimal, error) {
	total := basePrice

	for _, v := range variations {
		if len(v.Options) == 0 {
			return decimal.Zero, models.NewValidationError("variation %q has no options", v.Name)
		}
		if v.SelectedOption < 0 || v.SelectedOption >= len(v.Options) {
			return decimal.Zero, models.NewValidationError("variation %q has no option %d", v.Name, v.SelectedOption)
		}
		if variationActive(v) {
			total = total.Add(v.Options[v.SelectedOption].AdditionalPrice)
		}
	}

	for _, p := range personalizations {
		if personalizationActive(p) {
			total = total.Add(p.AdditionalPrice)
		}
	}

	return total.Round(2), nil
}

// escapeToken backslash-escapes the characters that are structural inside a
// variant identity, so free text can never collide with the separator or the
// not-chosen sentinel.
func escapeToken(token string) string {
	var b strings.Builder
	for _, r := range token {
		switch r {
		case '\\', '-', '~':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DeriveVariantIdentity builds the stable identity of one configuration:
// one token per axis in declaration order, joined with "-". Active
// variations contribute the selected option index, active personalizations
// the escaped text value, inactive optional axes the "~" sentinel.
func DeriveVariantIdentity(variations []models.Variation, personalizations []models.Personalization) string {
	tokens := make([]string, 0, len(variations)+len(personalizations))

	for _, v := range variations {
		if variationActive(v) {
			tokens = append(tokens, strconv.Itoa(v.SelectedOption))
		} else {
			tokens = append(tokens, notChosen)
		}
	}

	for _, p := range personalizations {
		if personalizationActive(p) {
			tokens = append(tokens, escapeToken(p.Value))
		} else {
			tokens = append(tokens, notChosen)
		}
	}

	return strings.Join(tokens, identitySeparator)
}

// ResolveLineItem prices one configured product and snapshots it as a cart
// line. The selections are validated against the template, quantity must be
// positive and within stock, and the returned item is fully independent of
// its inputs.
func ResolveLineItem(product *models.Product, variations []models.Variation, personalizations []models.Personalization, qty int) (*models.LineItem, error) {
	if qty <= 0 {
		return nil, models.NewValidationError("quantity must be positive, got %d", qty)
	}
	if qty > product.CountInStock {
		return nil, models.NewValidationError("only %d of %q in stock", product.CountInStock, product.Name)
	}

	unitPrice, err := ComputeUnitPrice(product.Price, variations, personalizations)
	if err != nil {
		return nil, err
	}

	snapVariations := make([]models.Variation, 0, len(variations))
	for _, v := range variations {
		snapVariations = append(snapVariations, v.Clone())
	}
	snapPersonalizations := make([]models.Personalization, 0, len(personalizations))
	for _, p := range personalizations {
		snapPersonalizations = append(snapPersonalizations, p.Clone())
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	return &models.LineItem{
		ProductID:        product.ID,
		Name:             product.Name,
		Image:            image,
		Price:            product.Price,
		TotalPrice:       unitPrice,
		Qty:              qty,
		VariantID:        DeriveVariantIdentity(variations, personalizations),
		Variations:       snapVariations,
		Personalizations: snapPersonalizations,
	}, nil
}

// AggregateOrderTotals sums the cart into the order money breakdown. Each
// field is rounded to 2 decimal places after summation, never per line.
func AggregateOrderTotals(items []models.LineItem, shippingPrice, taxPrice decimal.Decimal) models.OrderTotals {
	itemsPrice := decimal.Zero
	for _, item := range items {
		itemsPrice = itemsPrice.Add(item.TotalPrice.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	itemsPrice = itemsPrice.Round(2)
	shipping := shippingPrice.Round(2)
	tax := taxPrice.Round(2)

	return models.OrderTotals{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shipping,
		TaxPrice:      tax,
		TotalPrice:    itemsPrice.Add(shipping).Add(tax).Round(2),
	}
}

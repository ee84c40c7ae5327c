package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReviewRecomputesAggregate(t *testing.T) {
	product := &Product{Name: "Botanical Notebook"}

	err := product.AddReview(Review{Name: "Ana", Rating: 4, UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 1, product.NumReviews)
	assert.Equal(t, "4", product.Rating.String())

	err = product.AddReview(Review{Name: "Ben", Rating: 5, UserID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, 2, product.NumReviews)
	assert.Equal(t, "4.5", product.Rating.String())
}

func TestAddReviewRoundsAggregateToTwoPlaces(t *testing.T) {
	product := &Product{Name: "Botanical Notebook"}

	require.NoError(t, product.AddReview(Review{Name: "Ana", Rating: 4, UserID: "u1"}))
	require.NoError(t, product.AddReview(Review{Name: "Ben", Rating: 4, UserID: "u2"}))
	require.NoError(t, product.AddReview(Review{Name: "Cam", Rating: 5, UserID: "u3"}))

	// 13/3 kept at full division precision would not survive a round trip
	// through the stored 2-decimal column.
	assert.Equal(t, "4.33", product.Rating.String())
}

func TestAddReviewRejectsDuplicateUser(t *testing.T) {
	product := &Product{Name: "Botanical Notebook"}
	require.NoError(t, product.AddReview(Review{Name: "Ana", Rating: 4, UserID: "u1"}))

	err := product.AddReview(Review{Name: "Ana", Rating: 5, UserID: "u1"})
	assert.ErrorIs(t, err, ErrDuplicateReview)
	assert.Equal(t, 1, product.NumReviews)
	assert.Equal(t, "4", product.Rating.String())
}

func TestAddReviewValidatesRatingRange(t *testing.T) {
	product := &Product{Name: "Botanical Notebook"}

	for _, rating := range []int{0, 6, -1} {
		err := product.AddReview(Review{Name: "Ana", Rating: rating, UserID: "u1"})
		assert.True(t, IsValidation(err), "rating %d should be rejected", rating)
	}
	assert.Equal(t, 0, product.NumReviews)
}

func TestVariationCloneIsDeep(t *testing.T) {
	original := Variation{
		Name: "Cover Colour",
		Options: []VariationOption{
			{Name: "Sage", AdditionalPrice: decimal.Zero},
			{Name: "Terracotta", AdditionalPrice: decimal.NewFromInt(2)},
		},
	}

	clone := original.Clone()
	clone.Options[0].Name = "Mustard"

	assert.Equal(t, "Sage", original.Options[0].Name)
}

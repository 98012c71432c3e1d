package shop

import (
	"net/http"

	"github.com/nicksmd/fu-marketplace-api/internal/domain/shared"
)

// Shop context errors
var (
	ErrShopNotFound = shared.NewNotFoundError("SHOP_NOT_FOUND", "Shop does not exist")

	ErrItemMissing = shared.NewNotFoundError("ITEM_NOT_FOUND", "Item does not exist")

	// Review prerequisites, reported as 404 with the "review" type tag.
	ErrReviewMissingUser = shared.NewDomainError(http.StatusNotFound, shared.KindReview,
		"MISSING_USER", "Must provide userId when review shop")
	ErrReviewMissingRate = shared.NewDomainError(http.StatusNotFound, shared.KindReview,
		"MISSING_RATE", "Must provide rate when review shop")
	ErrReviewNoPriorOrder = shared.NewDomainError(http.StatusNotFound, shared.KindReview,
		"NO_PRIOR_ORDER", "You must order at this shop at least one time")
)

package types

import (
	ierr "github.com/detailpos/detailpos/internal/errors"
	"github.com/samber/lo"
)

// LineItemType represents the kind of charge a line item carries
type LineItemType string

const (
	// LineItemTypeService represents a detailing service from the catalog
	LineItemTypeService LineItemType = "service"
	// LineItemTypeProduct represents a retail product from the catalog
	LineItemTypeProduct LineItemType = "product"
	// LineItemTypeCustom represents an ad hoc charge entered at the register
	LineItemTypeCustom LineItemType = "custom"
)

func (t LineItemType) String() string {
	return string(t)
}

func (t LineItemType) Validate() error {
	allowed := []LineItemType{
		LineItemTypeService,
		LineItemTypeProduct,
		LineItemTypeCustom,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid line item type").
			WithHint("Please provide a valid line item type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// MaxLineItemNoteLength is the ceiling for free-text notes on a line item
const MaxLineItemNoteLength = 200

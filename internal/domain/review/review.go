package review

import (
	"strings"

	"github.com/BruksfildServices01/champa-store/internal/domain/catalog"
	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/models"
	"github.com/BruksfildServices01/champa-store/internal/optional"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ===============================
// Inputs
// ===============================

type ReviewInput struct {
	ProductID         uint
	CustomerName      string
	CustomerPhone     *string
	CustomerFacebook  *string
	CustomerInstagram *string
	Rating            int
	Comment           *string
	Images            []string
}

type ReviewPatch struct {
	CustomerName      optional.Value[string]   `json:"customer_name"`
	CustomerPhone     optional.Value[string]   `json:"customer_phone"`
	CustomerFacebook  optional.Value[string]   `json:"customer_facebook"`
	CustomerInstagram optional.Value[string]   `json:"customer_instagram"`
	Rating            optional.Value[int]      `json:"rating"`
	Comment           optional.Value[string]   `json:"comment"`
	Images            optional.Value[[]string] `json:"images"`
}

// Summary is the aggregate rating of one product.
type Summary struct {
	ProductID uint    `json:"product_id"`
	Average   float64 `json:"average_rating"`
	Count     int64   `json:"review_count"`
}

// ===============================
// Validations
// ===============================

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return httperr.ErrBusiness(httperr.CodeInvalidRating)
	}
	return nil
}

// NamesMatch compares reviewer names ignoring surrounding whitespace and case.
// This is the only check guarding customer rating edits.
func NamesMatch(stored, supplied string) bool {
	return strings.ToLower(strings.TrimSpace(stored)) == strings.ToLower(strings.TrimSpace(supplied))
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", httperr.ErrBusinessf(httperr.CodeInvalidInput, "Customer name is required.")
	}
	return name, nil
}

// CleanImages drops blank references. Nil means no images.
func CleanImages(refs []string) models.StringList {
	var out models.StringList
	for _, r := range refs {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// NewReview validates in and builds the row to insert. The product is
// checked by the caller.
func NewReview(in ReviewInput) (*models.ProductReview, error) {
	if err := ValidateRating(in.Rating); err != nil {
		return nil, err
	}
	name, err := validateName(in.CustomerName)
	if err != nil {
		return nil, err
	}

	return &models.ProductReview{
		ProductID:         in.ProductID,
		CustomerName:      name,
		CustomerPhone:     catalog.CleanText(in.CustomerPhone),
		CustomerFacebook:  catalog.CleanText(in.CustomerFacebook),
		CustomerInstagram: catalog.CleanText(in.CustomerInstagram),
		Rating:            in.Rating,
		Comment:           catalog.CleanText(in.Comment),
		Images:            CleanImages(in.Images),
	}, nil
}

// Changes validates the patch and returns the columns to update.
func (p ReviewPatch) Changes() (map[string]any, error) {
	changes := map[string]any{}

	if p.CustomerName.Set {
		if p.CustomerName.Null {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "Customer name is required.")
		}
		name, err := validateName(p.CustomerName.Value)
		if err != nil {
			return nil, err
		}
		changes["customer_name"] = name
	}

	if p.Rating.Set {
		if p.Rating.Null {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidRating)
		}
		if err := ValidateRating(p.Rating.Value); err != nil {
			return nil, err
		}
		changes["rating"] = p.Rating.Value
	}

	setText(changes, "customer_phone", p.CustomerPhone)
	setText(changes, "customer_facebook", p.CustomerFacebook)
	setText(changes, "customer_instagram", p.CustomerInstagram)
	setText(changes, "comment", p.Comment)

	if p.Images.Set {
		changes["images"] = CleanImages(p.Images.Value)
	}

	return changes, nil
}

func setText(changes map[string]any, column string, v optional.Value[string]) {
	if !v.Set {
		return
	}
	changes[column] = catalog.CleanText(v.Ptr())
}

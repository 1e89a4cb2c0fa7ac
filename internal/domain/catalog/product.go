package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/models"
	"github.com/BruksfildServices01/champa-store/internal/optional"
)

// ===============================
// Inputs
// ===============================

type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Stock       *int
	Image       *string
	Description *string
	Category    *string
	PriceType   *string
}

// ProductPatch carries only the fields present in the request.
type ProductPatch struct {
	Name        optional.Value[string]          `json:"name"`
	Price       optional.Value[decimal.Decimal] `json:"price"`
	Stock       optional.Value[int]             `json:"stock"`
	Image       optional.Value[string]          `json:"image"`
	Description optional.Value[string]          `json:"description"`
	Category    optional.Value[string]          `json:"category"`
	PriceType   optional.Value[string]          `json:"price_type"`
}

// ===============================
// Validations
// ===============================

func ValidatePrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return httperr.ErrBusiness(httperr.CodeInvalidPrice)
	}
	return nil
}

func ValidateStock(stock *int) error {
	if stock != nil && *stock < 0 {
		return httperr.ErrBusiness(httperr.CodeInvalidStock)
	}
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", httperr.ErrBusinessf(httperr.CodeInvalidInput, "Product name is required.")
	}
	return name, nil
}

// CleanText trims s and turns blank text into nil.
func CleanText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// NewProduct validates in and builds the row to insert.
func NewProduct(in ProductInput) (*models.Product, error) {
	name, err := validateName(in.Name)
	if err != nil {
		return nil, err
	}
	if err := ValidatePrice(in.Price); err != nil {
		return nil, err
	}
	if err := ValidateStock(in.Stock); err != nil {
		return nil, err
	}

	return &models.Product{
		Name:        name,
		Price:       in.Price.Round(2),
		Stock:       in.Stock,
		Image:       CleanText(in.Image),
		Description: CleanText(in.Description),
		Category:    CleanText(in.Category),
		PriceType:   CleanText(in.PriceType),
	}, nil
}

// Changes validates the patch and returns the columns to update.
func (p ProductPatch) Changes() (map[string]any, error) {
	changes := map[string]any{}

	if p.Name.Set {
		if p.Name.Null {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "Product name is required.")
		}
		name, err := validateName(p.Name.Value)
		if err != nil {
			return nil, err
		}
		changes["name"] = name
	}

	if p.Price.Set {
		if p.Price.Null {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidPrice)
		}
		if err := ValidatePrice(p.Price.Value); err != nil {
			return nil, err
		}
		changes["price"] = p.Price.Value.Round(2)
	}

	if p.Stock.Set {
		stock := p.Stock.Ptr()
		if err := ValidateStock(stock); err != nil {
			return nil, err
		}
		changes["stock"] = stock
	}

	setText(changes, "image", p.Image)
	setText(changes, "description", p.Description)
	setText(changes, "category", p.Category)
	setText(changes, "price_type", p.PriceType)

	return changes, nil
}

func setText(changes map[string]any, column string, v optional.Value[string]) {
	if !v.Set {
		return
	}
	changes[column] = CleanText(v.Ptr())
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/champa-store/internal/domain/catalog"
	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/httpresp"
	"github.com/BruksfildServices01/champa-store/internal/middleware"
	ucCatalog "github.com/BruksfildServices01/champa-store/internal/usecase/catalog"
	ucReview "github.com/BruksfildServices01/champa-store/internal/usecase/review"
)

// ======================================================
// HANDLER
// ======================================================

type ProductHandler struct {
	list    *ucCatalog.ListProducts
	get     *ucCatalog.GetProduct
	create  *ucCatalog.CreateProduct
	update  *ucCatalog.UpdateProduct
	delete  *ucCatalog.DeleteProduct
	summary *ucReview.RatingSummary
}

func NewProductHandler(
	list *ucCatalog.ListProducts,
	get *ucCatalog.GetProduct,
	create *ucCatalog.CreateProduct,
	update *ucCatalog.UpdateProduct,
	del *ucCatalog.DeleteProduct,
	summary *ucReview.RatingSummary,
) *ProductHandler {
	return &ProductHandler{
		list:    list,
		get:     get,
		create:  create,
		update:  update,
		delete:  del,
		summary: summary,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateProductRequest struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	PriceType   *string          `json:"price_type"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	p, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, p)
}

// Rating returns the average star rating and review count of a product.
func (h *ProductHandler) Rating(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	s, err := h.summary.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, s)
}

// ======================================================
// ADMIN
// ======================================================

func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	in := domain.ProductInput{
		Name:        req.Name,
		Stock:       req.Stock,
		Image:       req.Image,
		Description: req.Description,
		Category:    req.Category,
		PriceType:   req.PriceType,
	}
	if req.Price != nil {
		in.Price = *req.Price
	}

	p, err := h.create.Execute(c.Request.Context(), middleware.CurrentUserID(c), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update changes only the fields present in the body; null clears optional
// fields.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var patch domain.ProductPatch
	if !bindJSON(c, &patch) {
		return
	}

	p, err := h.update.Execute(c.Request.Context(), middleware.CurrentUserID(c), id, patch)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/champa-store/internal/domain/review"
	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/httpresp"
	"github.com/BruksfildServices01/champa-store/internal/middleware"
	ucReview "github.com/BruksfildServices01/champa-store/internal/usecase/review"
)

// ======================================================
// HANDLER
// ======================================================

type ReviewHandler struct {
	create       *ucReview.CreateReview
	list         *ucReview.ListReviews
	get          *ucReview.GetReview
	update       *ucReview.UpdateReview
	updateRating *ucReview.UpdateRatingByCustomer
	delete       *ucReview.DeleteReview
}

func NewReviewHandler(
	create *ucReview.CreateReview,
	list *ucReview.ListReviews,
	get *ucReview.GetReview,
	update *ucReview.UpdateReview,
	updateRating *ucReview.UpdateRatingByCustomer,
	del *ucReview.DeleteReview,
) *ReviewHandler {
	return &ReviewHandler{
		create:       create,
		list:         list,
		get:          get,
		update:       update,
		updateRating: updateRating,
		delete:       del,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// CreateReviewRequest is accepted as JSON or as a form post from the
// storefront.
type CreateReviewRequest struct {
	ProductID         uint     `json:"product_id" form:"product_id"`
	CustomerName      string   `json:"customer_name" form:"customer_name"`
	CustomerPhone     *string  `json:"customer_phone" form:"customer_phone"`
	CustomerFacebook  *string  `json:"customer_facebook" form:"customer_facebook"`
	CustomerInstagram *string  `json:"customer_instagram" form:"customer_instagram"`
	Rating            int      `json:"rating" form:"rating"`
	Comment           *string  `json:"comment" form:"comment"`
	Images            []string `json:"images" form:"images"`
}

type UpdateRatingRequest struct {
	CustomerName string `json:"customer_name" form:"customer_name"`
	Rating       int    `json:"rating" form:"rating"`
}

func (r CreateReviewRequest) input() domain.ReviewInput {
	return domain.ReviewInput{
		ProductID:         r.ProductID,
		CustomerName:      r.CustomerName,
		CustomerPhone:     r.CustomerPhone,
		CustomerFacebook:  r.CustomerFacebook,
		CustomerInstagram: r.CustomerInstagram,
		Rating:            r.Rating,
		Comment:           r.Comment,
		Images:            r.Images,
	}
}

func bindReviewRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "Invalid request body.")
		return false
	}
	return true
}

// ======================================================
// PUBLIC
// ======================================================

// List filters by ?product_id= when given.
func (h *ReviewHandler) List(c *gin.Context) {
	var productID *uint
	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidInput, "Invalid product_id.")
			return
		}
		pid := uint(id)
		productID = &pid
	}

	reviews, err := h.list.Execute(c.Request.Context(), productID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, reviews)
}

// CreateByCustomer stores a review from the storefront without a session.
func (h *ReviewHandler) CreateByCustomer(c *gin.Context) {
	var req CreateReviewRequest
	if !bindReviewRequest(c, &req) {
		return
	}
	if req.ProductID == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "product_id is required.")
		return
	}

	rv, err := h.create.Execute(c.Request.Context(), nil, req.input())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

// UpdateRating lets a customer change the stars of a review written under
// the same name.
func (h *ReviewHandler) UpdateRating(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateRatingRequest
	if !bindReviewRequest(c, &req) {
		return
	}

	rv, err := h.updateRating.Execute(c.Request.Context(), id, req.CustomerName, req.Rating)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": rv.ID, "rating": rv.Rating})
}

// ======================================================
// ADMIN
// ======================================================

func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	rv, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, rv)
}

func (h *ReviewHandler) CreateByAdmin(c *gin.Context) {
	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ProductID == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "product_id is required.")
		return
	}

	actorID := middleware.CurrentUserID(c)
	rv, err := h.create.Execute(c.Request.Context(), &actorID, req.input())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var patch domain.ReviewPatch
	if !bindJSON(c, &patch) {
		return
	}

	rv, err := h.update.Execute(c.Request.Context(), middleware.CurrentUserID(c), id, patch)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, rv)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
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

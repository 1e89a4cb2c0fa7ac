package review

import (
	"context"

	"github.com/BruksfildServices01/champa-store/internal/audit"
	domain "github.com/BruksfildServices01/champa-store/internal/domain/review"
	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/models"
	"github.com/BruksfildServices01/champa-store/internal/usecase/media"
)

// ======================================================
// CREATE
// ======================================================

// CreateReview serves both the admin console and the public storefront.
// ActorID is nil for customer submissions.
type CreateReview struct {
	repo  domain.Repository
	audit *audit.Logger
}

func NewCreateReview(repo domain.Repository, audit *audit.Logger) *CreateReview {
	return &CreateReview{repo: repo, audit: audit}
}

func (uc *CreateReview) Execute(
	ctx context.Context,
	actorID *uint,
	in domain.ReviewInput,
) (*models.ProductReview, error) {

	rv, err := domain.NewReview(in)
	if err != nil {
		return nil, err
	}

	ok, err := uc.repo.ProductExists(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "Product not found.")
	}

	if err := uc.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	if actorID != nil {
		uc.audit.Record(ctx, audit.Event{
			UserID:   actorID,
			Action:   audit.ActionReviewCreated,
			Entity:   "review",
			EntityID: &rv.ID,
		})
	}
	return rv, nil
}

// ======================================================
// READ
// ======================================================

type ListReviews struct {
	repo domain.Repository
}

func NewListReviews(repo domain.Repository) *ListReviews {
	return &ListReviews{repo: repo}
}

func (uc *ListReviews) Execute(ctx context.Context, productID *uint) ([]models.ProductReview, error) {
	return uc.repo.List(ctx, productID)
}

type GetReview struct {
	repo domain.Repository
}

func NewGetReview(repo domain.Repository) *GetReview {
	return &GetReview{repo: repo}
}

func (uc *GetReview) Execute(ctx context.Context, id uint) (*models.ProductReview, error) {
	return uc.repo.GetByID(ctx, id)
}

type RatingSummary struct {
	repo domain.Repository
}

func NewRatingSummary(repo domain.Repository) *RatingSummary {
	return &RatingSummary{repo: repo}
}

func (uc *RatingSummary) Execute(ctx context.Context, productID uint) (domain.Summary, error) {
	ok, err := uc.repo.ProductExists(ctx, productID)
	if err != nil {
		return domain.Summary{}, err
	}
	if !ok {
		return domain.Summary{}, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return uc.repo.Summary(ctx, productID)
}

// ======================================================
// UPDATE
// ======================================================

type UpdateReview struct {
	repo  domain.Repository
	audit *audit.Logger
	files media.Discarder
}

func NewUpdateReview(repo domain.Repository, audit *audit.Logger, files media.Discarder) *UpdateReview {
	return &UpdateReview{repo: repo, audit: audit, files: files}
}

func (uc *UpdateReview) Execute(
	ctx context.Context,
	actorID uint,
	id uint,
	patch domain.ReviewPatch,
) (*models.ProductReview, error) {

	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes, err := patch.Changes()
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return existing, nil
	}

	if err := uc.repo.UpdateFields(ctx, id, changes); err != nil {
		return nil, err
	}

	if next, ok := changes["images"].(models.StringList); ok && uc.files != nil {
		uc.files.Discard(ctx, dropped(existing.Images, next)...)
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionReviewUpdated,
		Entity:   "review",
		EntityID: &id,
	})

	return uc.repo.GetByID(ctx, id)
}

// UpdateRatingByCustomer lets the storefront change a rating without a
// session. The supplied name must match the stored reviewer name ignoring
// case and surrounding whitespace; nothing else is verified.
type UpdateRatingByCustomer struct {
	repo domain.Repository
}

func NewUpdateRatingByCustomer(repo domain.Repository) *UpdateRatingByCustomer {
	return &UpdateRatingByCustomer{repo: repo}
}

func (uc *UpdateRatingByCustomer) Execute(
	ctx context.Context,
	id uint,
	customerName string,
	rating int,
) (*models.ProductReview, error) {

	if err := domain.ValidateRating(rating); err != nil {
		return nil, err
	}

	rv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.NamesMatch(rv.CustomerName, customerName) {
		return nil, httperr.ErrBusiness(httperr.CodeNameMismatch)
	}

	if err := uc.repo.UpdateFields(ctx, id, map[string]any{"rating": rating}); err != nil {
		return nil, err
	}

	return uc.repo.GetByID(ctx, id)
}

// ======================================================
// DELETE
// ======================================================

type DeleteReview struct {
	repo  domain.Repository
	audit *audit.Logger
	files media.Discarder
}

func NewDeleteReview(repo domain.Repository, audit *audit.Logger, files media.Discarder) *DeleteReview {
	return &DeleteReview{repo: repo, audit: audit, files: files}
}

func (uc *DeleteReview) Execute(ctx context.Context, actorID uint, id uint) error {
	rv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionReviewDeleted,
		Entity:   "review",
		EntityID: &id,
	})

	if uc.files != nil {
		uc.files.Discard(ctx, rv.Images...)
	}
	return nil
}

// dropped returns the references in prev that next no longer lists.
func dropped(prev, next []string) []string {
	keep := make(map[string]bool, len(next))
	for _, ref := range next {
		keep[ref] = true
	}

	var out []string
	for _, ref := range prev {
		if !keep[ref] {
			out = append(out, ref)
		}
	}
	return out
}

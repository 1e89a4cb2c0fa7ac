package catalog

import (
	"context"

	"github.com/BruksfildServices01/champa-store/internal/audit"
	domain "github.com/BruksfildServices01/champa-store/internal/domain/catalog"
	"github.com/BruksfildServices01/champa-store/internal/models"
	"github.com/BruksfildServices01/champa-store/internal/usecase/media"
)

// ======================================================
// READ
// ======================================================

type ListProducts struct {
	repo domain.Repository
}

func NewListProducts(repo domain.Repository) *ListProducts {
	return &ListProducts{repo: repo}
}

func (uc *ListProducts) Execute(ctx context.Context) ([]models.Product, error) {
	return uc.repo.List(ctx)
}

type GetProduct struct {
	repo domain.Repository
}

func NewGetProduct(repo domain.Repository) *GetProduct {
	return &GetProduct{repo: repo}
}

func (uc *GetProduct) Execute(ctx context.Context, id uint) (*models.Product, error) {
	return uc.repo.GetByID(ctx, id)
}

// ======================================================
// CREATE
// ======================================================

type CreateProduct struct {
	repo  domain.Repository
	audit *audit.Logger
}

func NewCreateProduct(repo domain.Repository, audit *audit.Logger) *CreateProduct {
	return &CreateProduct{repo: repo, audit: audit}
}

func (uc *CreateProduct) Execute(
	ctx context.Context,
	actorID uint,
	in domain.ProductInput,
) (*models.Product, error) {

	p, err := domain.NewProduct(in)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionProductCreated,
		Entity:   "product",
		EntityID: &p.ID,
		Metadata: map[string]string{"name": p.Name},
	})
	return p, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateProduct struct {
	repo  domain.Repository
	audit *audit.Logger
	files media.Discarder
}

func NewUpdateProduct(repo domain.Repository, audit *audit.Logger, files media.Discarder) *UpdateProduct {
	return &UpdateProduct{repo: repo, audit: audit, files: files}
}

// Execute applies only the fields present in patch and returns the product
// as stored afterwards.
func (uc *UpdateProduct) Execute(
	ctx context.Context,
	actorID uint,
	id uint,
	patch domain.ProductPatch,
) (*models.Product, error) {

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

	if next, ok := changes["image"].(*string); ok && replaced(existing.Image, next) && uc.files != nil {
		uc.files.Discard(ctx, *existing.Image)
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionProductUpdated,
		Entity:   "product",
		EntityID: &id,
		Metadata: fieldNames(changes),
	})

	return uc.repo.GetByID(ctx, id)
}

// ======================================================
// DELETE
// ======================================================

type DeleteProduct struct {
	repo  domain.Repository
	audit *audit.Logger
	files media.Discarder
}

func NewDeleteProduct(repo domain.Repository, audit *audit.Logger, files media.Discarder) *DeleteProduct {
	return &DeleteProduct{repo: repo, audit: audit, files: files}
}

// Execute removes the product with its reviews, then their stored images.
func (uc *DeleteProduct) Execute(ctx context.Context, actorID uint, id uint) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	refs, err := uc.repo.ReviewImages(ctx, id)
	if err != nil {
		return err
	}
	if p.Image != nil {
		refs = append(refs, *p.Image)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionProductDeleted,
		Entity:   "product",
		EntityID: &id,
	})

	if uc.files != nil {
		uc.files.Discard(ctx, refs...)
	}
	return nil
}

// replaced reports whether a stored reference is dropped by next.
func replaced(prev, next *string) bool {
	return prev != nil && (next == nil || *next != *prev)
}

func fieldNames(changes map[string]any) map[string][]string {
	names := make([]string, 0, len(changes))
	for k := range changes {
		names = append(names, k)
	}
	return map[string][]string{"fields": names}
}

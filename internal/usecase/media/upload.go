package media

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/BruksfildServices01/champa-store/internal/audit"
	"github.com/BruksfildServices01/champa-store/internal/domain/account"
	"github.com/BruksfildServices01/champa-store/internal/domain/catalog"
	"github.com/BruksfildServices01/champa-store/internal/imaging"
	"github.com/BruksfildServices01/champa-store/internal/logger"
	"github.com/BruksfildServices01/champa-store/internal/storage"
)

const (
	FolderProfiles = "profiles"
	FolderProducts = "products"
	FolderReviews  = "reviews"
)

// Uploader turns an uploaded file into a stored WebP and returns its
// reference. Replaced references are removed best-effort.
type Uploader struct {
	processor *imaging.Processor
	store     storage.Storage
	users     account.Repository
	products  catalog.Repository
	audit     *audit.Logger
}

func NewUploader(
	processor *imaging.Processor,
	store storage.Storage,
	users account.Repository,
	products catalog.Repository,
	audit *audit.Logger,
) *Uploader {
	return &Uploader{
		processor: processor,
		store:     store,
		users:     users,
		products:  products,
		audit:     audit,
	}
}

func (u *Uploader) save(ctx context.Context, folder string, r io.Reader) (string, error) {
	res, err := u.processor.Process(r)
	if err != nil {
		return "", err
	}
	return u.store.Save(ctx, storage.NewKey(folder, imaging.Extension), bytes.NewReader(res.Data), imaging.ContentType)
}

// Discarder removes stored uploads that no row references any more.
type Discarder interface {
	Discard(ctx context.Context, refs ...string)
}

var _ Discarder = (*Uploader)(nil)

// Discard deletes refs from storage best-effort. Blank refs and references
// the storage did not produce, such as external URLs, are skipped.
func (u *Uploader) Discard(ctx context.Context, refs ...string) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		err := u.store.Delete(ctx, ref)
		if err == nil || errors.Is(err, storage.ErrForeignReference) {
			continue
		}
		logger.FromContext(ctx).Warn("could not remove stored upload", "ref", ref, "error", err)
	}
}

func (u *Uploader) discard(ctx context.Context, ref *string) {
	if ref != nil {
		u.Discard(ctx, *ref)
	}
}

// ProfileImage replaces the profile picture of userID.
func (u *Uploader) ProfileImage(ctx context.Context, userID uint, r io.Reader) (string, error) {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	ref, err := u.save(ctx, FolderProfiles, r)
	if err != nil {
		return "", err
	}

	if err := u.users.UpdateProfileImage(ctx, userID, &ref); err != nil {
		u.discard(ctx, &ref)
		return "", err
	}

	u.discard(ctx, user.ProfileImage)
	return ref, nil
}

// ProductImage replaces the image of productID.
func (u *Uploader) ProductImage(ctx context.Context, actorID, productID uint, r io.Reader) (string, error) {
	p, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return "", err
	}

	ref, err := u.save(ctx, FolderProducts, r)
	if err != nil {
		return "", err
	}

	if err := u.products.UpdateFields(ctx, productID, map[string]any{"image": ref}); err != nil {
		u.discard(ctx, &ref)
		return "", err
	}

	u.discard(ctx, p.Image)

	u.audit.Record(ctx, audit.Event{
		UserID:   &actorID,
		Action:   audit.ActionImageUploaded,
		Entity:   "product",
		EntityID: &productID,
		Metadata: map[string]string{"ref": ref},
	})
	return ref, nil
}

// ReviewImage stores a picture a customer can attach to a review.
func (u *Uploader) ReviewImage(ctx context.Context, r io.Reader) (string, error) {
	return u.save(ctx, FolderReviews, r)
}

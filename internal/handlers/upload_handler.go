package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/champa-store/internal/httperr"
	"github.com/BruksfildServices01/champa-store/internal/imaging"
	"github.com/BruksfildServices01/champa-store/internal/metrics"
	"github.com/BruksfildServices01/champa-store/internal/middleware"
	"github.com/BruksfildServices01/champa-store/internal/usecase/media"
)

// ======================================================
// HANDLER
// ======================================================

type UploadHandler struct {
	uploader *media.Uploader
	maxBytes int64
	metrics  *metrics.Metrics
}

func NewUploadHandler(uploader *media.Uploader, maxBytes int64, m *metrics.Metrics) *UploadHandler {
	return &UploadHandler{uploader: uploader, maxBytes: maxBytes, metrics: m}
}

var errNoFile = errors.New("no file")

// openUpload accepts the part named "file" or "image".
func (h *UploadHandler) openUpload(c *gin.Context) (multipart.File, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+(1<<20))

	fh, err := c.FormFile("file")
	if err != nil {
		fh, err = c.FormFile("image")
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, httperr.ErrBusiness(httperr.CodeFileTooLarge)
		}
		return nil, errNoFile
	}

	if fh.Size > h.maxBytes {
		return nil, httperr.ErrBusiness(httperr.CodeFileTooLarge)
	}
	if !imaging.AllowedFilename(fh.Filename) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidImage)
	}
	return fh.Open()
}

func (h *UploadHandler) count(target string, err error) {
	if h.metrics != nil {
		h.metrics.UploadsTotal.WithLabelValues(target, metrics.Result(err)).Inc()
	}
}

func (h *UploadHandler) fail(c *gin.Context, target string, err error) {
	h.count(target, err)
	if errors.Is(err, errNoFile) {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "No file uploaded.")
		return
	}
	httperr.FromError(c, err)
}

// ======================================================
// ENDPOINTS
// ======================================================

// Profile replaces the signed-in admin's profile picture.
func (h *UploadHandler) Profile(c *gin.Context) {
	f, err := h.openUpload(c)
	if err != nil {
		h.fail(c, media.FolderProfiles, err)
		return
	}
	defer f.Close()

	ref, err := h.uploader.ProfileImage(c.Request.Context(), middleware.CurrentUserID(c), f)
	if err != nil {
		h.fail(c, media.FolderProfiles, err)
		return
	}
	h.count(media.FolderProfiles, nil)
	c.JSON(http.StatusOK, gin.H{"profile_image": ref})
}

func (h *UploadHandler) Product(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	f, err := h.openUpload(c)
	if err != nil {
		h.fail(c, media.FolderProducts, err)
		return
	}
	defer f.Close()

	ref, err := h.uploader.ProductImage(c.Request.Context(), middleware.CurrentUserID(c), id, f)
	if err != nil {
		h.fail(c, media.FolderProducts, err)
		return
	}
	h.count(media.FolderProducts, nil)
	c.JSON(http.StatusOK, gin.H{"id": id, "image": ref})
}

// Review stores an image that a later review can list in images.
func (h *UploadHandler) Review(c *gin.Context) {
	f, err := h.openUpload(c)
	if err != nil {
		h.fail(c, media.FolderReviews, err)
		return
	}
	defer f.Close()

	ref, err := h.uploader.ReviewImage(c.Request.Context(), f)
	if err != nil {
		h.fail(c, media.FolderReviews, err)
		return
	}
	h.count(media.FolderReviews, nil)
	c.JSON(http.StatusCreated, gin.H{"url": ref})
}

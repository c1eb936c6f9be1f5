package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wanderlust/hotel-api/internal/api/metrics"
	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

const (
	// HeaderIdempotencyKey lets a client retry an upload without creating a
	// second asset.
	HeaderIdempotencyKey = "Idempotency-Key"

	photoCacheControl = "public, max-age=31536000"
	photoRoute        = "/api/v1/agency/photos/"
)

// photoFields are the multipart field names accepted for the photo, in order.
var photoFields = []string{"photo", "file"}

type PhotoHandler struct {
	photos ports.PhotoService
	log    zerolog.Logger
}

func NewPhotoHandler(photos ports.PhotoService, log zerolog.Logger) *PhotoHandler {
	return &PhotoHandler{photos: photos, log: log}
}

// Upload stores the caller's profile photo.
//
// @Summary      Upload a profile photo
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BasicAuth
// @Param        photo            formData  file    true   "JPEG, PNG or GIF (max 5 MiB)"
// @Param        Idempotency-Key  header    string  false  "Replays a previous upload with the same key"
// @Success      201  {object}  uploadResponse
// @Failure      400  {object}  msgResponse
// @Failure      401  {object}  msgResponse
// @Failure      422  {object}  msgResponse
// @Router       /api/v1/member/upload-photo [post]
// @Router       /api/v1/agency/upload-photo [post]
func (h *PhotoHandler) Upload(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}

	fh, err := formFile(c)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(uploadResult(err)).Inc()
		return err
	}
	file, err := fh.Open()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(uploadResult(err)).Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read uploaded file")
	}
	defer file.Close()

	rec, err := h.photos.UploadProfilePhoto(c.Request().Context(), actor, ports.PhotoUploadInput{
		Filename:       fh.Filename,
		ContentType:    fh.Header.Get(echo.HeaderContentType),
		Body:           file,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	metrics.UploadsTotal.WithLabelValues(uploadResult(err)).Inc()
	if err != nil {
		return err
	}
	metrics.UploadSizeBytes.Observe(float64(rec.Length))

	return c.JSON(http.StatusCreated, uploadResponse{
		Msg:     "profile photo uploaded",
		PhotoID: rec.ID,
		URL:     photoRoute + rec.ID,
	})
}

func formFile(c echo.Context) (*multipart.FileHeader, error) {
	for _, field := range photoFields {
		fh, err := c.FormFile(field)
		if err == nil {
			return fh, nil
		}
		if !errors.Is(err, http.ErrMissingFile) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart body")
		}
	}
	return nil, domain.ErrMissingFile
}

func uploadResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrEmptyUpload), errors.Is(err, domain.ErrMissingFile):
		return "empty"
	case errors.Is(err, domain.ErrOversize):
		return "oversize"
	case errors.Is(err, domain.ErrDisallowedContentType):
		return "bad_type"
	case errors.Is(err, domain.ErrVerificationFailed):
		return "verification_failed"
	}
	return "error"
}

// MemberPhoto streams the profile photo of a member.
//
// @Summary      Member profile photo
// @Tags         photos
// @Produce      octet-stream
// @Param        username  path  string  true  "Member username"
// @Success      200
// @Failure      404  {object}  msgResponse
// @Router       /api/v1/member/{username} [get]
func (h *PhotoHandler) MemberPhoto(c echo.Context) error {
	dl, err := h.photos.ProfilePhoto(c.Request().Context(), c.Param("username"), domain.RolePtr(domain.RoleMember))
	if err != nil {
		return err
	}
	return h.stream(c, dl)
}

// UserPhoto streams the profile photo of any user.
//
// @Summary      User profile photo
// @Tags         photos
// @Produce      octet-stream
// @Param        username  path  string  true  "Username"
// @Success      200
// @Failure      404  {object}  msgResponse
// @Router       /api/v1/agency/{username} [get]
func (h *PhotoHandler) UserPhoto(c echo.Context) error {
	dl, err := h.photos.ProfilePhoto(c.Request().Context(), c.Param("username"), nil)
	if err != nil {
		return err
	}
	return h.stream(c, dl)
}

// ByID streams an asset by its id.
//
// @Summary      Photo by id
// @Tags         photos
// @Produce      octet-stream
// @Param        id  path  string  true  "Asset id"
// @Success      200
// @Failure      404  {object}  msgResponse
// @Router       /api/v1/agency/photos/{id} [get]
func (h *PhotoHandler) ByID(c echo.Context) error {
	dl, err := h.photos.Download(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.stream(c, dl)
}

// ListOwn lists the caller's uploads.
//
// @Summary      List own photos
// @Tags         photos
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   photoItem
// @Failure      401  {object}  msgResponse
// @Router       /api/v1/agency/photos [get]
func (h *PhotoHandler) ListOwn(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	recs, err := h.photos.ListOwn(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	items := make([]photoItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, photoItem{
			ID:         r.ID,
			Filename:   r.Filename,
			UploadDate: r.Metadata.UploadDate,
			URL:        photoRoute + r.ID,
		})
	}
	return c.JSON(http.StatusOK, items)
}

// stream copies the asset to the client chunk by chunk. Once the headers are
// out a copy error can only be logged.
func (h *PhotoHandler) stream(c echo.Context, dl *domain.AssetDownload) error {
	defer dl.Body.Close()

	header := c.Response().Header()
	contentType := dl.Record.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	header.Set(echo.HeaderContentType, contentType)
	header.Set(echo.HeaderContentLength, strconv.FormatInt(dl.Record.Length, 10))
	header.Set("Cache-Control", photoCacheControl)
	c.Response().WriteHeader(http.StatusOK)

	n, err := io.Copy(c.Response(), dl.Body)
	metrics.AssetBytesServedTotal.Add(float64(n))
	if err != nil {
		h.log.Warn().Err(err).
			Str("asset_id", dl.Record.ID).
			Int64("written", n).
			Int64("length", dl.Record.Length).
			Msg("asset stream interrupted")
	}
	return nil
}

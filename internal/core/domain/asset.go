package domain

import (
	"io"
	"time"
)

// AssetMetadata is the weak back-reference stored with every asset.
type AssetMetadata struct {
	UploadedBy string    `json:"uploadedBy"`
	UploadDate time.Time `json:"uploadDate"`
}

// AssetRecord describes a stored binary object. It never changes after the
// upload that created it.
type AssetRecord struct {
	ID          string        `json:"id"`
	Filename    string        `json:"filename"`
	ContentType string        `json:"contentType"`
	Length      int64         `json:"length"`
	Metadata    AssetMetadata `json:"metadata"`
}

// AssetDownload is an open stream of an asset. Callers must Close Body.
type AssetDownload struct {
	Record *AssetRecord
	Body   io.ReadCloser
}

// AllowedPhotoTypes are the content types accepted for profile photos.
var AllowedPhotoTypes = []string{"image/jpeg", "image/png", "image/gif"}

// IsAllowedPhotoType reports whether ct is an accepted photo content type.
func IsAllowedPhotoType(ct string) bool {
	for _, t := range AllowedPhotoTypes {
		if t == ct {
			return true
		}
	}
	return false
}

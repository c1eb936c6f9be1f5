package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

func multipartRequest(t *testing.T, field, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="me.png"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/member/upload-photo", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestPhotoHandler_Upload(t *testing.T) {
	content := []byte("\x89PNG fake image bytes")
	var got ports.PhotoUploadInput
	var body []byte
	stub := &stubPhotoService{
		uploadFn: func(_ context.Context, actor domain.Principal, in ports.PhotoUploadInput) (*domain.AssetRecord, error) {
			if actor.Identity != "alice" {
				t.Fatalf("unexpected actor %+v", actor)
			}
			got = in
			body, _ = io.ReadAll(in.Body)
			return &domain.AssetRecord{ID: "64b0000000000000000000aa", Length: int64(len(body))}, nil
		},
	}
	h := NewPhotoHandler(stub, zerolog.Nop())

	req := multipartRequest(t, "photo", "image/png", content)
	req.Header.Set(HeaderIdempotencyKey, "retry-1")
	c, rec := newContext(req, &memberP)

	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.ContentType != "image/png" || got.Filename != "me.png" || got.IdempotencyKey != "retry-1" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if !bytes.Equal(body, content) {
		t.Fatalf("body mismatch: %q", body)
	}

	var resp uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.PhotoID != "64b0000000000000000000aa" || resp.URL != "/api/v1/agency/photos/64b0000000000000000000aa" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestPhotoHandler_Upload_LegacyFieldName(t *testing.T) {
	called := false
	stub := &stubPhotoService{
		uploadFn: func(context.Context, domain.Principal, ports.PhotoUploadInput) (*domain.AssetRecord, error) {
			called = true
			return &domain.AssetRecord{ID: "x"}, nil
		},
	}
	h := NewPhotoHandler(stub, zerolog.Nop())

	c, _ := newContext(multipartRequest(t, "file", "image/gif", []byte("GIF89a")), &agencyP)
	if err := h.Upload(c); err != nil || !called {
		t.Fatalf("expected upload via the file field, err=%v called=%v", err, called)
	}
}

func TestPhotoHandler_Upload_MissingFile(t *testing.T) {
	h := NewPhotoHandler(&stubPhotoService{}, zerolog.Nop())

	c, _ := newContext(multipartRequest(t, "avatar", "image/png", []byte("x")), &memberP)
	if err := h.Upload(c); !errors.Is(err, domain.ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
}

func TestPhotoHandler_Download_Headers(t *testing.T) {
	content := bytes.Repeat([]byte{0xAB}, 300*1024)
	stub := &stubPhotoService{
		downloadFn: func(_ context.Context, id string) (*domain.AssetDownload, error) {
			if id != "64b0000000000000000000aa" {
				return nil, domain.ErrAssetNotFound
			}
			return &domain.AssetDownload{
				Record: &domain.AssetRecord{ID: id, ContentType: "image/jpeg", Length: int64(len(content))},
				Body:   io.NopCloser(bytes.NewReader(content)),
			}, nil
		},
	}
	h := NewPhotoHandler(stub, zerolog.Nop())

	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/v1/agency/photos/64b0000000000000000000aa", nil), nil)
	c.SetParamNames("id")
	c.SetParamValues("64b0000000000000000000aa")

	if err := h.ByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentType); got != "image/jpeg" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get(echo.HeaderContentLength); got != "307200" {
		t.Fatalf("unexpected content length %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=31536000" {
		t.Fatalf("unexpected cache control %q", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), content) {
		t.Fatalf("body mismatch: %d bytes", rec.Body.Len())
	}
}

func TestPhotoHandler_MemberPhoto_Scoped(t *testing.T) {
	stub := &stubPhotoService{
		profileFn: func(_ context.Context, username string, scope *domain.Role) (*domain.AssetDownload, error) {
			if scope == nil || *scope != domain.RoleMember {
				t.Fatalf("member route must scope to members, got %v", scope)
			}
			return nil, domain.ErrAssetNotFound
		},
	}
	h := NewPhotoHandler(stub, zerolog.Nop())

	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/api/v1/member/kachun01", nil), nil)
	c.SetParamNames("username")
	c.SetParamValues("kachun01")
	if err := h.MemberPhoto(c); !errors.Is(err, domain.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestPhotoHandler_ListOwn(t *testing.T) {
	uploaded := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubPhotoService{
		listFn: func(_ context.Context, actor domain.Principal) ([]*domain.AssetRecord, error) {
			return []*domain.AssetRecord{{
				ID:       "64b0000000000000000000aa",
				Filename: "lobby.jpg",
				Metadata: domain.AssetMetadata{UploadedBy: actor.Identity, UploadDate: uploaded},
			}}, nil
		},
	}
	h := NewPhotoHandler(stub, zerolog.Nop())

	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/api/v1/agency/photos", nil), &agencyP)
	if err := h.ListOwn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var items []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	item := items[0]
	if item["_id"] != "64b0000000000000000000aa" || item["filename"] != "lobby.jpg" ||
		item["url"] != "/api/v1/agency/photos/64b0000000000000000000aa" || item["uploadDate"] != "2024-05-01T10:00:00Z" {
		t.Fatalf("unexpected item: %v", item)
	}
}

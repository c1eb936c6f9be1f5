package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Credential store
// ---------------------------------------------------------------------------

type stubCredentialRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.Credential
	updateErr error
	findErr   error
	updates   int
}

func newStubCredentialRepo() *stubCredentialRepo {
	return &stubCredentialRepo{users: make(map[string]*domain.Credential)}
}

func cloneCredential(c *domain.Credential) *domain.Credential {
	clone := *c
	return &clone
}

// add stores a credential with a bcrypt hash of secret.
func (r *stubCredentialRepo) add(username, secret string, role domain.Role, status bool) *domain.Credential {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	c := &domain.Credential{
		ID:         username,
		Username:   username,
		SecretHash: string(hash),
		Role:       role,
		Status:     status,
	}
	r.mu.Lock()
	r.users[username] = c
	r.mu.Unlock()
	return cloneCredential(c)
}

func (r *stubCredentialRepo) get(username string) *domain.Credential {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.users[username]
	if !ok {
		return nil
	}
	return cloneCredential(c)
}

func (r *stubCredentialRepo) FindByUsername(_ context.Context, username string) (*domain.Credential, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if c := r.get(username); c != nil {
		return c, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubCredentialRepo) FindByToken(_ context.Context, token string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.users {
		if c.Token != "" && c.Token == token {
			return cloneCredential(c), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubCredentialRepo) Update(_ context.Context, username string, f domain.CredentialUpdate) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.updates++
	if f.SecretHash != nil {
		c.SecretHash = *f.SecretHash
	}
	if f.Token != nil {
		c.Token = *f.Token
	}
	if f.Email != nil {
		c.Email = *f.Email
	}
	if f.Phone != nil {
		c.Phone = *f.Phone
	}
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.Status != nil {
		c.Status = *f.Status
	}
	if f.Role != nil {
		c.Role = *f.Role
	}
	if f.ProfilePhoto != nil {
		c.ProfilePhoto = *f.ProfilePhoto
	}
	return nil
}

func (r *stubCredentialRepo) List(_ context.Context) ([]*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Credential, 0, len(r.users))
	for _, c := range r.users {
		out = append(out, cloneCredential(c))
	}
	return out, nil
}

func (r *stubCredentialRepo) Create(_ context.Context, c *domain.Credential) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[c.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := cloneCredential(c)
	clone.ID = c.Username
	r.users[c.Username] = clone
	return cloneCredential(clone), nil
}

// Delete mirrors the Mongo filter that never matches admin records.
func (r *stubCredentialRepo) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.users[username]
	if !ok || c.Role == domain.RoleAdmin {
		return domain.ErrUserNotFound
	}
	delete(r.users, username)
	return nil
}

// ---------------------------------------------------------------------------
// Asset bucket
// ---------------------------------------------------------------------------

type stubObject struct {
	rec  domain.AssetRecord
	data []byte
}

type stubBucket struct {
	mu      sync.Mutex
	seq     int
	objects map[string]*stubObject
	deleted []string

	openErr error
	// tamper runs on the stored object after Close.
	tamper func(o *stubObject)
	// dropOnClose simulates a files document that never appears.
	dropOnClose bool
}

func newStubBucket() *stubBucket {
	return &stubBucket{objects: make(map[string]*stubObject)}
}

func (b *stubBucket) OpenUpload(_ context.Context, filename, contentType string, meta domain.AssetMetadata) (ports.AssetUpload, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	b.mu.Lock()
	b.seq++
	id := fmt.Sprintf("%024x", b.seq)
	b.mu.Unlock()
	return &stubUpload{
		bucket: b,
		rec:    domain.AssetRecord{ID: id, Filename: filename, ContentType: contentType, Metadata: meta},
	}, nil
}

func (b *stubBucket) Stat(_ context.Context, id string) (*domain.AssetRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.objects[id]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	rec := o.rec
	return &rec, nil
}

func (b *stubBucket) OpenDownload(_ context.Context, id string) (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.objects[id]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	return io.NopCloser(bytes.NewReader(o.data)), nil
}

func (b *stubBucket) FindByUploader(_ context.Context, uploader string) (ports.AssetCursor, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var recs []*domain.AssetRecord
	for _, o := range b.objects {
		if o.rec.Metadata.UploadedBy == uploader {
			rec := o.rec
			recs = append(recs, &rec)
		}
	}
	return &stubCursor{recs: recs, pos: -1}, nil
}

func (b *stubBucket) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.objects[id]; !ok {
		return domain.ErrAssetNotFound
	}
	delete(b.objects, id)
	b.deleted = append(b.deleted, id)
	return nil
}

func (b *stubBucket) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

type stubUpload struct {
	bucket  *stubBucket
	rec     domain.AssetRecord
	buf     bytes.Buffer
	aborted bool
}

func (u *stubUpload) ID() string { return u.rec.ID }

func (u *stubUpload) Write(p []byte) (int, error) { return u.buf.Write(p) }

func (u *stubUpload) Close() error {
	b := u.bucket
	if b.dropOnClose {
		return nil
	}
	o := &stubObject{rec: u.rec, data: bytes.Clone(u.buf.Bytes())}
	o.rec.Length = int64(len(o.data))
	if b.tamper != nil {
		b.tamper(o)
	}
	b.mu.Lock()
	b.objects[o.rec.ID] = o
	b.mu.Unlock()
	return nil
}

func (u *stubUpload) Abort() error {
	u.aborted = true
	return nil
}

type stubCursor struct {
	recs []*domain.AssetRecord
	pos  int
}

func (c *stubCursor) Next(context.Context) bool {
	c.pos++
	return c.pos < len(c.recs)
}

func (c *stubCursor) Record() (*domain.AssetRecord, error) { return c.recs[c.pos], nil }
func (c *stubCursor) Err() error                           { return nil }
func (c *stubCursor) Close(context.Context) error          { return nil }

// ---------------------------------------------------------------------------
// Upload dedup and cleanup scheduler
// ---------------------------------------------------------------------------

type stubDedup struct {
	keys map[string]string
}

func newStubDedup() *stubDedup { return &stubDedup{keys: make(map[string]string)} }

func (d *stubDedup) Lookup(_ context.Context, uploader, key string) (string, bool, error) {
	id, ok := d.keys[uploader+":"+key]
	return id, ok, nil
}

func (d *stubDedup) Remember(_ context.Context, uploader, key, assetID string) error {
	d.keys[uploader+":"+key] = assetID
	return nil
}

type stubScheduler struct {
	jobs []ports.AssetCleanup
}

func (s *stubScheduler) Enqueue(job ports.AssetCleanup) { s.jobs = append(s.jobs, job) }

// ---------------------------------------------------------------------------
// Hotels, messages, favourites
// ---------------------------------------------------------------------------

type stubHotelRepo struct {
	seq    int
	hotels map[string]*domain.Hotel
}

func newStubHotelRepo() *stubHotelRepo {
	return &stubHotelRepo{hotels: make(map[string]*domain.Hotel)}
}

func (r *stubHotelRepo) Create(_ context.Context, h *domain.Hotel) (*domain.Hotel, error) {
	r.seq++
	clone := *h
	clone.ID = fmt.Sprintf("%024x", r.seq)
	r.hotels[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubHotelRepo) FindByID(_ context.Context, id string) (*domain.Hotel, error) {
	if len(id) != 24 {
		return nil, domain.ErrInvalidInput
	}
	h, ok := r.hotels[id]
	if !ok {
		return nil, domain.ErrHotelNotFound
	}
	clone := *h
	return &clone, nil
}

func (r *stubHotelRepo) List(_ context.Context) ([]*domain.Hotel, error) {
	out := make([]*domain.Hotel, 0, len(r.hotels))
	for _, h := range r.hotels {
		clone := *h
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubHotelRepo) Replace(_ context.Context, id string, h *domain.Hotel) (*domain.Hotel, error) {
	if _, ok := r.hotels[id]; !ok {
		return nil, domain.ErrHotelNotFound
	}
	clone := *h
	clone.ID = id
	r.hotels[id] = &clone
	out := clone
	return &out, nil
}

func (r *stubHotelRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.hotels[id]; !ok {
		return domain.ErrHotelNotFound
	}
	delete(r.hotels, id)
	return nil
}

type stubMessageRepo struct {
	seq  int
	msgs map[string]*domain.Message
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{msgs: make(map[string]*domain.Message)}
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	r.seq++
	clone := *m
	clone.ID = fmt.Sprintf("%024x", r.seq)
	r.msgs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubMessageRepo) FindByID(_ context.Context, id string) (*domain.Message, error) {
	m, ok := r.msgs[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubMessageRepo) ListForParticipant(_ context.Context, identity string) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.msgs {
		if m.Sender == identity || m.Receiver == identity {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.msgs[id]; !ok {
		return domain.ErrMessageNotFound
	}
	delete(r.msgs, id)
	return nil
}

type stubFavouriteRepo struct {
	favs []*domain.Favourite
}

func (r *stubFavouriteRepo) Create(_ context.Context, f *domain.Favourite) (*domain.Favourite, error) {
	for _, existing := range r.favs {
		if existing.UserID == f.UserID && existing.HotelID == f.HotelID {
			return nil, domain.ErrFavouriteExists
		}
	}
	clone := *f
	clone.ID = fmt.Sprintf("fav-%d", len(r.favs)+1)
	r.favs = append(r.favs, &clone)
	out := clone
	return &out, nil
}

func (r *stubFavouriteRepo) ListByUser(_ context.Context, userID string) ([]*domain.Favourite, error) {
	var out []*domain.Favourite
	for _, f := range r.favs {
		if f.UserID == userID {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubFavouriteRepo) DeleteByHotel(_ context.Context, userID, hotelID string) error {
	for i, f := range r.favs {
		if f.UserID == userID && f.HotelID == hotelID {
			r.favs = append(r.favs[:i], r.favs[i+1:]...)
			return nil
		}
	}
	return domain.ErrFavouriteNotFound
}

func (r *stubFavouriteRepo) DeleteByUser(_ context.Context, userID string) error {
	kept := r.favs[:0]
	for _, f := range r.favs {
		if f.UserID != userID {
			kept = append(kept, f)
		}
	}
	r.favs = kept
	return nil
}

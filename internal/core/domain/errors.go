package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ErrUnauthenticated is matched by every AuthFailure via errors.Is.
var ErrUnauthenticated = errors.New("authentication failed")

// AuthFailure is the kind of a failed authentication attempt.
type AuthFailure string

const (
	ErrMalformedHeader AuthFailure = "malformed_header"
	ErrMissingFields   AuthFailure = "missing_fields"
	ErrUnknownIdentity AuthFailure = "unknown_identity"
	ErrInvalidSecret   AuthFailure = "invalid_secret"
	ErrMissingToken    AuthFailure = "missing_token"
	ErrInvalidSession  AuthFailure = "invalid_session"
)

func (f AuthFailure) Error() string { return "authentication failed: " + string(f) }

func (f AuthFailure) Is(target error) bool { return target == ErrUnauthenticated }

// PublicMessage is the client-facing text. It never tells identity and
// secret failures apart.
func (f AuthFailure) PublicMessage() string {
	switch f {
	case ErrMalformedHeader:
		return "authorization header missing or invalid"
	case ErrMissingFields:
		return "missing username or password"
	case ErrMissingToken:
		return "missing token"
	case ErrInvalidSession:
		return "invalid session"
	default:
		return "invalid credentials"
	}
}

// BasicScheme reports whether the failure came from the Basic strategy.
func (f AuthFailure) BasicScheme() bool {
	switch f {
	case ErrMalformedHeader, ErrMissingFields, ErrUnknownIdentity, ErrInvalidSecret:
		return true
	}
	return false
}

// Upload failures.
var (
	ErrAssetNotFound         = errors.New("asset not found")
	ErrMissingFile           = errors.New("no file uploaded")
	ErrEmptyUpload           = errors.New("upload is empty")
	ErrVerificationFailed    = errors.New("upload verification failed")
	ErrDisallowedContentType = errors.New("invalid file type, only JPEG, PNG and GIF are allowed")
	ErrOversize              = errors.New("file exceeds the size limit")
)

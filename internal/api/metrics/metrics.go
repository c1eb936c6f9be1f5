// Package metrics defines and registers the custom Prometheus metrics of the
// hotel API. It is the single source of truth for metric names, labels and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wanderlust"

// ── Authentication ───────────────────────────────────────────────────────────

// AuthAttemptsTotal counts authentication attempts.
// Labels:
//   - scheme: "basic" or "token"
//   - result: "ok" or the failure kind (e.g. "invalid_secret", "invalid_session")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by scheme and result.",
	},
	[]string{"scheme", "result"},
)

// TokensIssuedTotal counts session tokens handed out by the login routes.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued.",
	},
)

// AuthzDenialsTotal counts requests rejected by the authorizer.
// Label:
//   - reason: protected_account, role_mismatch, same_role_messaging or forbidden
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of requests denied by the authorizer, by reason.",
	},
	[]string{"reason"},
)

// ── Assets ───────────────────────────────────────────────────────────────────

// UploadsTotal counts profile photo uploads.
// Label:
//   - result: "ok", "empty", "oversize", "bad_type", "verification_failed", "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of profile photo uploads, by result.",
	},
	[]string{"result"},
)

// UploadSizeBytes observes the size of accepted uploads.
var UploadSizeBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_size_bytes",
		Help:      "Size of accepted profile photo uploads.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 7), // 1 KiB .. 4 MiB
	},
)

// AssetBytesServedTotal counts bytes streamed to clients by download routes.
var AssetBytesServedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asset_bytes_served_total",
		Help:      "Total number of asset bytes streamed to clients.",
	},
)

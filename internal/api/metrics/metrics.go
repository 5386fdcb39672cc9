// Package metrics defines the custom Prometheus metrics of the business card
// API. It is the single source of truth for metric names, labels, and help
// strings.
//
// Call Register() once at startup (before the HTTP server starts) to expose
// them through a registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "card"

// ── Identity metrics ──────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - op: "signup" or "login"
//   - result: "success", "invalid", "conflict" or "error"
var AuthAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by outcome.",
	},
	[]string{"op", "result"},
)

// ── Profile metrics ───────────────────────────────────────────────────────────

// ProfileOperationsTotal counts profile use-case calls.
// Labels:
//   - op: e.g. "create", "update", "photo", "contact_upsert", "social_remove"
//   - result: "success", "invalid", "not_found", "conflict" or "error"
var ProfileOperationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_operations_total",
		Help:      "Total number of profile operations, by operation and outcome.",
	},
	[]string{"op", "result"},
)

// PublicProfileViewsTotal counts unauthenticated card lookups.
// Label:
//   - result: "found" or "not_found"
var PublicProfileViewsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "public_profile_views_total",
		Help:      "Total number of public profile lookups, by result.",
	},
	[]string{"result"},
)

// PhotoUploadBytes observes the size of accepted photo uploads.
var PhotoUploadBytes = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "photo_upload_bytes",
		Help:      "Size of profile photo uploads in bytes.",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 2, 8), // 16KiB … 2MiB
	},
)

// QRCodesGeneratedTotal counts QR code images rendered for public profiles.
var QRCodesGeneratedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "qrcodes_generated_total",
		Help:      "Total number of public profile QR codes generated.",
	},
)

// Register adds every custom metric to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		AuthAttemptsTotal,
		ProfileOperationsTotal,
		PublicProfileViewsTotal,
		PhotoUploadBytes,
		QRCodesGeneratedTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Package metrics defines the application's Prometheus counters.
// They are registered with the default registry and served on /metrics
// next to the HTTP metrics collected by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fullapp"

// Result label values.
const (
	ResultSuccess   = "success"
	ResultDuplicate = "duplicate"
	ResultInvalid   = "invalid"
	ResultFailed    = "failed"
	ResultError     = "error"
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: success, duplicate, invalid or error
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: success, failed (bad credentials), invalid or error
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ProductMutationsTotal counts successful catalog writes.
// Label:
//   - op: create, update or delete
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of successful product writes, by operation.",
	},
	[]string{"op"},
)

// SeedRunsTotal counts seeder executions.
// Label:
//   - outcome: seeded (something inserted), skipped (already populated) or error
var SeedRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seed_runs_total",
		Help:      "Total number of startup seed runs, by outcome.",
	},
	[]string{"outcome"},
)

// EventsPublishedTotal counts domain event deliveries to the broker.
// Labels:
//   - type: event type, e.g. user.registered
//   - result: success or error
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of domain events handed to the broker, by type and result.",
	},
	[]string{"type", "result"},
)

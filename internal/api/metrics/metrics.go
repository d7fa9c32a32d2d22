// Package metrics defines and registers all custom Prometheus metrics for the
// review API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at package load;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cinecritic"

// AccountsCreatedTotal counts successfully created accounts.
var AccountsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "denied"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// MoviesCreatedTotal counts movies added to the catalog.
var MoviesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "movies_created_total",
		Help:      "Total number of movies created.",
	},
)

// ReviewsCreatedTotal counts successfully created reviews.
var ReviewsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews created.",
	},
)

// AuthDeniedTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: "missing_header", "bad_header", "bad_token", "bad_claims"
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests rejected during authentication, by reason.",
	},
	[]string{"reason"},
)

// ReviewConflictsTotal counts review submissions rejected because the critic
// had already reviewed the movie.
var ReviewConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "review_conflicts_total",
		Help:      "Total number of duplicate review submissions rejected.",
	},
)

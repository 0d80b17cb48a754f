package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// PapersCreated counts paper submissions, labeled by the status they start in.
	PapersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "papers_created_total",
			Help: "Total number of research papers submitted.",
		},
		[]string{"status"},
	)

	// ReviewsProcessed counts admin reviews, labeled by outcome.
	ReviewsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_reviews_total",
			Help: "Total number of approval requests reviewed.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(PapersCreated, ReviewsProcessed)
}

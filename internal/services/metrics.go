package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	documentWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recruitcrm",
		Subsystem: "store",
		Name:      "writes_total",
		Help:      "Total number of document writes broken down by collection and operation.",
	}, []string{"collection", "operation"})

	duplicateApplications = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "recruitcrm",
		Subsystem: "applications",
		Name:      "duplicates_rejected_total",
		Help:      "Total number of application creates rejected because the candidate already applied to the job.",
	})

	listCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recruitcrm",
		Subsystem: "cache",
		Name:      "list_requests_total",
		Help:      "Total number of list cache lookups broken down by resource and hit/miss.",
	}, []string{"resource", "result"})
)

func recordWrite(collection, operation string) {
	documentWrites.WithLabelValues(collection, operation).Inc()
}

func recordListCache(resource string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	listCacheRequests.WithLabelValues(resource, result).Inc()
}

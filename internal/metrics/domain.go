package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ExtractionsCreatedTotal counts successful extraction inserts.
	ExtractionsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "researchd",
		Name:      "extractions_created_total",
		Help:      "Total number of extractions created",
	})

	// TagLinksCreatedTotal counts relationship rows written by the linker.
	TagLinksCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "researchd",
		Name:      "tag_links_created_total",
		Help:      "Total number of extraction-tag relationship rows created",
	})

	// TagLinkMissesTotal counts embedded tag names with no catalog entry.
	TagLinkMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "researchd",
		Name:      "tag_link_misses_total",
		Help:      "Total number of tag names that failed catalog lookup during linking",
	})
)

// RegisterDomainMetrics registers domain counters explicitly (no init()).
func RegisterDomainMetrics() {
	prometheus.MustRegister(ExtractionsCreatedTotal)
	prometheus.MustRegister(TagLinksCreatedTotal)
	prometheus.MustRegister(TagLinkMissesTotal)
}

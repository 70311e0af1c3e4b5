package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	scrubDuration  prom.Histogram
	documents      *prom.CounterVec
	mentionsLinked prom.Counter
	mentionsKept   prom.Counter
	refsShortened  prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on the
// given registry (a fresh registry is created when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		scrubDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "prscrub",
			Name:      "scrub_duration_seconds",
			Help:      "Duration of individual document scrub operations",
			Buckets:   prom.DefBuckets,
		}),
		documents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "prscrub",
			Name:      "documents_total",
			Help:      "Documents scrubbed by outcome",
		}, []string{"outcome"}),
		mentionsLinked: prom.NewCounter(prom.CounterOpts{
			Namespace: "prscrub",
			Name:      "mentions_linked_total",
			Help:      "Mentions converted to profile links",
		}),
		mentionsKept: prom.NewCounter(prom.CounterOpts{
			Namespace: "prscrub",
			Name:      "mentions_kept_total",
			Help:      "Ambiguous org/team mentions left as plain text",
		}),
		refsShortened: prom.NewCounter(prom.CounterOpts{
			Namespace: "prscrub",
			Name:      "references_shortened_total",
			Help:      "Issue/PR links rewritten to shorthand form",
		}),
	}
	reg.MustRegister(pr.scrubDuration, pr.documents, pr.mentionsLinked, pr.mentionsKept, pr.refsShortened)
	return pr
}

func (pr *PrometheusRecorder) ObserveScrubDuration(d time.Duration) {
	pr.scrubDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncDocuments(outcome string) {
	pr.documents.WithLabelValues(outcome).Inc()
}

func (pr *PrometheusRecorder) AddMentionsLinked(n int) {
	pr.mentionsLinked.Add(float64(n))
}

func (pr *PrometheusRecorder) AddMentionsKept(n int) {
	pr.mentionsKept.Add(float64(n))
}

func (pr *PrometheusRecorder) AddReferencesShortened(n int) {
	pr.refsShortened.Add(float64(n))
}

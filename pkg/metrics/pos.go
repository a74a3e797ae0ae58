package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// POSMetrics records counters for draft activity and bill submissions.
type POSMetrics struct {
	draftMutations *prometheus.CounterVec
	billsSubmitted prometheus.Counter
	submitFailures prometheus.Counter
	submitDuration prometheus.Histogram
}

// NewPOSMetrics registers the POS metrics on the provided registerer.
func NewPOSMetrics(reg prometheus.Registerer) *POSMetrics {
	if reg == nil {
		return &POSMetrics{}
	}
	draftMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "draft_mutations_total",
		Help: "Draft bill mutations by operation.",
	}, []string{"op"})
	billsSubmitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bills_submitted_total",
		Help: "Bills committed to the database.",
	})
	submitFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bill_submit_failures_total",
		Help: "Bill submissions that failed and left the draft intact.",
	})
	submitDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bill_submit_duration_seconds",
		Help:    "Duration of bill submission transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(draftMutations, billsSubmitted, submitFailures, submitDuration)
	return &POSMetrics{
		draftMutations: draftMutations,
		billsSubmitted: billsSubmitted,
		submitFailures: submitFailures,
		submitDuration: submitDuration,
	}
}

// IncDraftMutation counts one draft mutation for the named operation.
func (m *POSMetrics) IncDraftMutation(op string) {
	if m == nil || m.draftMutations == nil {
		return
	}
	m.draftMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncBillSubmitted counts a committed bill.
func (m *POSMetrics) IncBillSubmitted() {
	if m == nil || m.billsSubmitted == nil {
		return
	}
	m.billsSubmitted.Inc()
}

// IncSubmitFailure counts a failed submission.
func (m *POSMetrics) IncSubmitFailure() {
	if m == nil || m.submitFailures == nil {
		return
	}
	m.submitFailures.Inc()
}

// ObserveSubmitDuration records how long a submission transaction took.
func (m *POSMetrics) ObserveSubmitDuration(duration time.Duration) {
	if m == nil || m.submitDuration == nil {
		return
	}
	m.submitDuration.Observe(duration.Seconds())
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Mohamedkassttar/ZZP-sub005/internal/domain"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Classification metrics
	ClassifiedTotal     *prometheus.CounterVec
	ConfidenceHistogram prometheus.Histogram
	AutoBooked          *prometheus.CounterVec
	BookingErrors       prometheus.Counter

	// Settlement metrics
	SettlementsTotal    prometheus.Counter
	SettlementConflicts prometheus.Counter

	// Rule metrics
	RulesLearned    prometheus.Counter
	RulesReinforced prometheus.Counter

	// Enrichment metrics
	EnrichmentDuration prometheus.Histogram
	EnrichmentFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ClassifiedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boekhouding_classified_total",
				Help: "Transactions classified, by winning layer",
			},
			[]string{"layer"},
		),
		ConfidenceHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "boekhouding_classification_confidence",
			Help:    "Confidence scores of classification suggestions",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
		AutoBooked: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boekhouding_auto_booked_total",
				Help: "Transactions booked without user interaction, by mode",
			},
			[]string{"mode"},
		),
		BookingErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "boekhouding_booking_errors_total",
			Help: "Failed booking attempts",
		}),
		SettlementsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "boekhouding_settlements_total",
			Help: "Suspense postings cleared against invoices",
		}),
		SettlementConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "boekhouding_settlement_conflicts_total",
			Help: "Settlement attempts on transactions not pending",
		}),
		RulesLearned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "boekhouding_rules_learned_total",
			Help: "New rules created from user confirmations",
		}),
		RulesReinforced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "boekhouding_rules_reinforced_total",
			Help: "Existing rules reinforced by user confirmations",
		}),
		EnrichmentDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "boekhouding_enrichment_duration_seconds",
			Help:    "Duration of enrichment collaborator calls",
			Buckets: prometheus.DefBuckets,
		}),
		EnrichmentFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boekhouding_enrichment_failures_total",
				Help: "Enrichment collaborator failures, by collaborator",
			},
			[]string{"collaborator"},
		),
	}
}

// ObserveConfidence implements usecase.ClassificationMetrics.
func (m *Metrics) ObserveConfidence(score int) {
	m.ConfidenceHistogram.Observe(float64(score))
}

// CountLayerHit implements usecase.ClassificationMetrics.
func (m *Metrics) CountLayerHit(layer string) {
	m.ClassifiedTotal.WithLabelValues(layer).Inc()
}

// CountAutoBook implements usecase.ClassificationMetrics.
func (m *Metrics) CountAutoBook(mode domain.BookingMode) {
	m.AutoBooked.WithLabelValues(string(mode)).Inc()
}

// CountBookingError implements usecase.ClassificationMetrics.
func (m *Metrics) CountBookingError() {
	m.BookingErrors.Inc()
}

// CountSettlement implements usecase.SettlementMetrics.
func (m *Metrics) CountSettlement() {
	m.SettlementsTotal.Inc()
}

// CountSettlementConflict implements usecase.SettlementMetrics.
func (m *Metrics) CountSettlementConflict() {
	m.SettlementConflicts.Inc()
}

// CountRuleLearned implements usecase.RuleMetrics.
func (m *Metrics) CountRuleLearned() {
	m.RulesLearned.Inc()
}

// CountRuleReinforced implements usecase.RuleMetrics.
func (m *Metrics) CountRuleReinforced() {
	m.RulesReinforced.Inc()
}

// ObserveEnrichmentDuration implements enrichment.Observer.
func (m *Metrics) ObserveEnrichmentDuration(seconds float64) {
	m.EnrichmentDuration.Observe(seconds)
}

// CountEnrichmentFailure implements enrichment.Observer.
func (m *Metrics) CountEnrichmentFailure(collaborator string) {
	m.EnrichmentFailures.WithLabelValues(collaborator).Inc()
}

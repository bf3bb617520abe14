package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes extraction and grading counters to Prometheus.
type Metrics struct {
	loadedQuestions *prometheus.GaugeVec
	loadedDocuments prometheus.Gauge
	loads           *prometheus.CounterVec
	loadErrors      prometheus.Counter
	answers         *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loadedQuestions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "quiz",
			Name:      "loaded_questions",
			Help:      "Number of questions produced by the last extraction, by source.",
		}, []string{"source"}),
		loadedDocuments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quiz",
			Name:      "loaded_documents",
			Help:      "Number of documents read by the last extraction.",
		}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "extractions_total",
			Help:      "Extraction passes, by source.",
		}, []string{"source"}),
		loadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "extraction_errors_total",
			Help:      "Extraction passes that failed to read a document.",
		}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "answers_checked_total",
			Help:      "Graded answers, by outcome.",
		}, []string{"correct"}),
	}

	reg.MustRegister(m.loadedQuestions, m.loadedDocuments, m.loads, m.loadErrors, m.answers)
	return m
}

// ObserveLoad records a successful extraction pass.
func (m *Metrics) ObserveLoad(source string, documents, questions int) {
	m.loadedQuestions.Reset()
	m.loadedQuestions.WithLabelValues(source).Set(float64(questions))
	m.loadedDocuments.Set(float64(documents))
	m.loads.WithLabelValues(source).Inc()
}

// ObserveLoadError records a failed extraction pass.
func (m *Metrics) ObserveLoadError() {
	m.loadErrors.Inc()
}

// ObserveAnswer records a graded answer.
func (m *Metrics) ObserveAnswer(correct bool) {
	m.answers.WithLabelValues(strconv.FormatBool(correct)).Inc()
}

package observability

import (
	"io"
	"net/http"
	"strconv"
	"time"
)

// Metrics holds the process-wide collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	apiRequests     *CounterVec
	apiLatency      *HistogramVec
	apiInflight     *Gauge
	llmRequests     *CounterVec
	llmLatency      *HistogramVec
	llmTokens       *CounterVec
	recommendations *CounterVec
	sessionsClosed  *CounterVec
	statsCache      *CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("breakbetter_api_requests_total", "HTTP requests by method, route and status.",
			[]string{"method", "route", "status"}),
		apiLatency: NewHistogramVec("breakbetter_api_request_duration_seconds", "HTTP request latency.",
			[]string{"method", "route"}, nil),
		apiInflight: NewGauge("breakbetter_api_inflight_requests", "HTTP requests currently being served."),
		llmRequests: NewCounterVec("breakbetter_llm_requests_total", "Text generation calls by model and outcome.",
			[]string{"model", "status"}),
		llmLatency: NewHistogramVec("breakbetter_llm_request_duration_seconds", "Text generation latency.",
			[]string{"model"}, []float64{0.5, 1, 2, 5, 10, 20, 30, 60}),
		llmTokens: NewCounterVec("breakbetter_llm_tokens_total", "Tokens consumed by text generation.",
			[]string{"model", "kind"}),
		recommendations: NewCounterVec("breakbetter_recommendations_total", "Recommendation requests by outcome.",
			[]string{"outcome"}),
		sessionsClosed: NewCounterVec("breakbetter_sessions_closed_total", "Closed sessions by kind.",
			[]string{"kind"}),
		statsCache: NewCounterVec("breakbetter_stats_cache_lookups_total", "Stats cache lookups by result.",
			[]string{"result"}),
	}
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.apiRequests.Inc(method, route, strconv.Itoa(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Add(1)
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Add(-1)
}

func (m *Metrics) ObserveLLMRequest(model, status string, dur time.Duration, inputTokens, outputTokens int) {
	if m == nil {
		return
	}
	m.llmRequests.Inc(model, status)
	if dur > 0 {
		m.llmLatency.Observe(dur.Seconds(), model)
	}
	if inputTokens > 0 {
		m.llmTokens.Add(float64(inputTokens), model, "input")
	}
	if outputTokens > 0 {
		m.llmTokens.Add(float64(outputTokens), model, "output")
	}
}

func (m *Metrics) IncRecommendation(outcome string) {
	if m == nil {
		return
	}
	m.recommendations.Inc(outcome)
}

func (m *Metrics) IncSessionClosed(kind string) {
	if m == nil {
		return
	}
	m.sessionsClosed.Inc(kind)
}

func (m *Metrics) IncStatsCache(result string) {
	if m == nil {
		return
	}
	m.statsCache.Inc(result)
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.llmRequests, m.llmLatency, m.llmTokens,
		m.recommendations, m.sessionsClosed, m.statsCache,
	}
	for _, wr := range writers {
		if err := wr.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

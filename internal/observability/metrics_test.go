package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetricsWritePrometheus(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/stats", 200, 30*time.Millisecond)
	m.ObserveAPI("GET", "/api/stats", 200, 70*time.Millisecond)
	m.ObserveLLMRequest("gpt-3.5-turbo", "ok", 2*time.Second, 120, 80)
	m.IncRecommendation("generation_failed")

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`breakbetter_api_requests_total{method="GET",route="/api/stats",status="200"} 2`,
		`breakbetter_api_request_duration_seconds_bucket{method="GET",route="/api/stats",le="0.05"} 1`,
		`breakbetter_api_request_duration_seconds_count{method="GET",route="/api/stats"} 2`,
		`breakbetter_llm_tokens_total{model="gpt-3.5-turbo",kind="input"} 120`,
		`breakbetter_recommendations_total{outcome="generation_failed"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", 200, time.Millisecond)
	m.IncSessionClosed("study")
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil WritePrometheus: %v", err)
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"a", "b"}, []string{`x"y`})
	if got != `{a="x\"y",b="unknown"}` {
		t.Fatalf("labelString: got %s", got)
	}
}

package observability

import (
	"context"
	"testing"

	"github.com/yungbote/breakbetter-backend/internal/platform/logger"
)

func TestInitOTelDisabled(t *testing.T) {
	shutdown, err := InitOTel(context.Background(), logger.Nop(), OtelConfig{})
	if err != nil {
		t.Fatalf("InitOTel: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestInitOTelUnknownExporter(t *testing.T) {
	if _, err := InitOTel(context.Background(), logger.Nop(), OtelConfig{Enabled: true, Exporter: "zipkin"}); err == nil {
		t.Fatalf("expected error for unknown exporter")
	}
}

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" api-key = abc ,broken, x=")
	if len(got) != 1 || got["api-key"] != "abc" {
		t.Fatalf("ParseHeaders: got %v", got)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("ParseHeaders: expected nil for empty input")
	}
}

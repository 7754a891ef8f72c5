package ctxutil

import "context"

type traceDataKey struct{}

// TraceData identifies a single HTTP request across log lines.
type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// TraceIDs returns the trace and request ids, empty when none were attached.
func TraceIDs(ctx context.Context) (traceID, requestID string) {
	if td := GetTraceData(ctx); td != nil {
		return td.TraceID, td.RequestID
	}
	return "", ""
}

package ctxutil

import "context"

type requestInfoKey struct{}

// RequestInfo identifies one inbound request across logs and spans.
type RequestInfo struct {
	RequestID string
	TraceID   string
}

func WithRequestInfo(ctx context.Context, ri *RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, ri)
}

func GetRequestInfo(ctx context.Context) *RequestInfo {
	if ctx == nil {
		return nil
	}
	if ri, ok := ctx.Value(requestInfoKey{}).(*RequestInfo); ok {
		return ri
	}
	return nil
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if ri := GetRequestInfo(ctx); ri != nil {
		return ri.RequestID
	}
	return ""
}

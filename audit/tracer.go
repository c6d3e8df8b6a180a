package audit

import (
	"context"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/sessionband/observe"
	"github.com/jonwraymond/sessionband/session"
)

// maxSummaryLen bounds the stored result summary.
const maxSummaryLen = 200

// Trace records one in-flight or just-finished database call.
type Trace struct {
	RequestID  string
	ToolName   string
	Parameters map[string]any
	UserID     string
	SessionID  string
	AuthType   string
	Status     string // running|completed|error
	StartedAt  time.Time
}

// Tracer tracks active database calls and writes their audit records.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: best-effort; unknown request ids are logged and ignored.
type Tracer struct {
	logger observe.Logger

	mu     sync.Mutex
	active map[string]*Trace
}

// NewTracer creates an audit tracer. A nil logger discards records.
func NewTracer(logger observe.Logger) *Tracer {
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &Tracer{
		logger: logger,
		active: make(map[string]*Trace),
	}
}

// StartRequest registers a new call and returns its request id. Parameters
// are redacted before being stored or logged. Identity attribution comes
// from the session on the context when one is present.
func (t *Tracer) StartRequest(ctx context.Context, toolName string, params map[string]any) string {
	id := uuid.New()
	requestID := hex.EncodeToString(id[:4])

	tr := &Trace{
		RequestID:  requestID,
		ToolName:   toolName,
		Parameters: RedactParameters(params),
		Status:     "running",
		StartedAt:  time.Now(),
	}
	if sess := session.FromContext(ctx); sess != nil {
		tr.UserID = sess.UserID
		tr.SessionID = sess.SessionID
		tr.AuthType = sess.AuthType
	}

	t.mu.Lock()
	t.active[requestID] = tr
	t.mu.Unlock()

	t.logger.Info(ctx, "request started",
		observe.Field{Key: "request_id", Value: requestID},
		observe.Field{Key: "tool", Value: toolName},
		observe.Field{Key: "user_id", Value: tr.UserID},
		observe.Field{Key: "session_id", Value: tr.SessionID},
		observe.Field{Key: "parameters", Value: tr.Parameters},
	)
	return requestID
}

// CompleteRequest finishes the call identified by requestID. The summary is
// truncated before logging; a non-empty errMsg marks the call failed and
// promotes the record to error level. The trace is removed either way.
func (t *Tracer) CompleteRequest(ctx context.Context, requestID, summary, errMsg string, rowCount int) {
	t.mu.Lock()
	tr, ok := t.active[requestID]
	if ok {
		delete(t.active, requestID)
	}
	t.mu.Unlock()

	if !ok {
		t.logger.Warn(ctx, "completion for unknown request",
			observe.Field{Key: "request_id", Value: requestID})
		return
	}

	duration := time.Since(tr.StartedAt)
	if len(summary) > maxSummaryLen {
		summary = summary[:maxSummaryLen]
	}

	fields := []observe.Field{
		{Key: "request_id", Value: requestID},
		{Key: "tool", Value: tr.ToolName},
		{Key: "user_id", Value: tr.UserID},
		{Key: "session_id", Value: tr.SessionID},
		{Key: "duration_ms", Value: duration.Milliseconds()},
		{Key: "row_count", Value: rowCount},
		{Key: "result_summary", Value: summary},
	}

	if errMsg != "" {
		tr.Status = "error"
		fields = append(fields, observe.Field{Key: "error", Value: errMsg})
		t.logger.Error(ctx, "request failed", fields...)
		return
	}
	tr.Status = "completed"
	t.logger.Info(ctx, "request completed", fields...)
}

// Active returns a snapshot of the currently running traces keyed by
// request id.
func (t *Tracer) Active() map[string]Trace {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]Trace, len(t.active))
	for id, tr := range t.active {
		out[id] = *tr
	}
	return out
}

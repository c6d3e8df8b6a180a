package queryband

import (
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/sessionband/auth"
	"github.com/jonwraymond/sessionband/session"
)

// maxPairs caps the total number of key=value pairs in one band. Extras
// beyond the cap are silently dropped; the backing store rejects oversized
// bands outright.
const maxPairs = 20

// BuilderConfig configures the queryband builder.
type BuilderConfig struct {
	// Application is the application identifier leading every band.
	// Default: "sessionband"
	Application string
}

// Builder builds audit strings of the form KEY1=value1;KEY2=value2;...;
// honored by the backing data store.
type Builder struct {
	config BuilderConfig
}

// NewBuilder creates a queryband builder.
func NewBuilder(config BuilderConfig) *Builder {
	if config.Application == "" {
		config.Application = "sessionband"
	}
	return &Builder{config: config}
}

// Build serializes session attribution, the tool name, and caller-supplied
// extra pairs into one bounded audit string. Fixed leading pairs are the
// application identifier, a fresh short request id, and a timestamp; a nil
// session emits an explicit anonymous marker instead of identity fields.
func (b *Builder) Build(sess *session.Session, toolName string, extra map[string]string) string {
	var pairs []string
	add := func(key, value string) {
		pairs = append(pairs, key+"="+value)
	}

	add("APPLICATION", Sanitize(b.config.Application))
	add("REQUEST_ID", shortRequestID())
	add("TIMESTAMP", time.Now().UTC().Format("20060102_150405"))

	if sess != nil {
		if sess.UserID != "" {
			add("USER_ID", truncate(Sanitize(sess.UserID), 64))
		}
		if sess.Username != "" && sess.Username != sess.UserID {
			add("USERNAME", truncate(Sanitize(sess.Username), 64))
		}
		if sess.SessionID != "" {
			add("SESSION_ID", truncate(Sanitize(sess.SessionID), 16))
		}
		if sess.ClientIP != "" {
			add("CLIENT_IP", Sanitize(sess.ClientIP))
		}
		if sess.AuthType != "" {
			add("AUTH_TYPE", truncate(Sanitize(sess.AuthType), 32))
		}
	} else {
		add("USER_ID", "anonymous")
		add("AUTH_TYPE", "none")
	}

	if toolName != "" {
		add("TOOL_NAME", truncate(Sanitize(toolName), 64))
	}

	// Extras are emitted in sorted key order for a deterministic band.
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if len(pairs) >= maxPairs {
			break
		}
		key := truncate(strings.ToUpper(Sanitize(k)), 32)
		add(key, truncate(Sanitize(extra[k]), 64))
	}

	return strings.Join(pairs, ";") + ";"
}

// BuildFromRequestContext serializes per-call request context attribution
// instead of session identity. Values pass through SanitizeRaw so the band
// can be embedded directly in the SET QUERY_BAND statement.
func (b *Builder) BuildFromRequestContext(rc *auth.RequestContext, toolName string) string {
	var sb strings.Builder
	add := func(key, value string) {
		if value == "" {
			return
		}
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(SanitizeRaw(value))
		sb.WriteByte(';')
	}

	add("APPLICATION", b.config.Application)
	add("TOOL_NAME", toolName)

	if rc != nil {
		add("REQUEST_ID", rc.RequestID)
		add("SESSION_ID", rc.SessionID)
		add("TENANT", rc.Tenant)

		// Prefer the first hop of X-Forwarded-For when present.
		if rc.ForwardedFor != "" {
			first, _, _ := strings.Cut(rc.ForwardedFor, ",")
			add("CLIENT_IP", strings.TrimSpace(first))
		}

		add("USER_AGENT", rc.UserAgent)
		add("AUTH_SCHEME", rc.AuthScheme)

		// A short fingerprint of the token hash; never the token itself.
		if rc.AuthTokenSHA256 != "" {
			add("AUTH_HASH", truncate(rc.AuthTokenSHA256, 12))
		}
		add("PROXYUSER", rc.AssumeUser)
	}

	return sb.String()
}

// shortRequestID returns a fresh 8-hex-character request id.
func shortRequestID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:4])
}

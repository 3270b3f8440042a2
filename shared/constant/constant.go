package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID      contextKey = "user_id"
	ContextKeyUserEmail   contextKey = "user_email"
	ContextKeyAccessToken contextKey = "access_token"
	ContextKeySessionID   contextKey = "session_id"
)

const (
	RequestParamID   = "id"
	RequestParamRef  = "ref"
	RequestParamSlug = "slug"

	RequestQueryPartySize = "party_size"
	RequestQueryNext      = "next"
)

const (
	DateFormat    = time.RFC3339
	CalendarDate  = "2006-01-02"
	MinutesToSecs = 60
)

const (
	DefaultCountryCode = "977"
	DefaultCurrency    = "USD"
	DefaultLoginPath   = "/login"
	DefaultDraftTTLMin = 60
	DefaultSessionMin  = 60
	DefaultAPITimeout  = 15
)

const (
	OtelServiceScopeName  = "service"
	OtelHandlerScopeName  = "handler"
	OtelExternalScopeName = "external"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderContentDisposition = "Content-Disposition"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderSessionID          = "X-Session-ID"
	RequestHeaderIdempotencyKey     = "Idempotency-Key"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypePDF  = "application/pdf"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
	ResponseErrorGeneric              = "Something went wrong, please try again"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Empty = ""
)

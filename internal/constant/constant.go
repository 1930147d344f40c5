package constant

// Constant package provides constants used throughout the application.

type ctxKey string

const (
	CorrelationIDKey ctxKey = "CorrelationID"
)

// Gin context keys set by middleware and read by handlers.
const (
	IdentityKey      = "identity"
	ValidatedBodyKey = "validatedBody"
)

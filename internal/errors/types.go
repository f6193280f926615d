package errors

// represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "validation_error", "bad_gateway")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

type ErrorInfo struct {
	category  string
	sanitized string
}

// standard error codes
const (
	CodeValidationError    = "validation_error"
	CodeServerError        = "server_error"
	CodeEmbeddingFailed    = "embedding_failed"
	CodeServiceUnavailable = "service_unavailable"
	CodeBadGateway         = "bad_gateway"
	CodeGatewayTimeout     = "gateway_timeout"
)

// error categories for classification
const (
	CategoryDatabase   = "database"
	CategoryValidation = "validation"
	CategoryUpstream   = "upstream"
	CategoryTimeout    = "timeout"
	CategoryUnknown    = "unknown"
)

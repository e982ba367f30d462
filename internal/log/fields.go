package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"

	FieldTransactionType = "transaction_type"
	FieldRecordCount     = "record_count"
	FieldPage            = "page"
	FieldRangeStart      = "range_start"
	FieldRangeEnd        = "range_end"
	FieldForceRefresh    = "force_refresh"
	FieldCacheTTL        = "cache_ttl_minutes"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentLedger    = "ledger"
	ComponentCache     = "cache"
	ComponentDashboard = "dashboard"
	ComponentTemplate  = "template"
)

// ErrorTypes classifies failures for presentation purposes: configuration
// errors are terminal, upstream errors are retryable by re-requesting.
const (
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeUpstream      = "upstream_error"
	ErrorTypeMalformed     = "malformed_record_error"
	ErrorTypeInternal      = "internal_error"
)

package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeUnknownSlot      = "unknown_slot"

	// Session lifecycle errors
	ErrCodeSessionNotFound  = "session_not_found"
	ErrCodeSessionFinished  = "session_finished"
	ErrCodeSessionInactive  = "session_inactive"
	ErrCodeStartFailed      = "session_start_failed"
	ErrCodeSubmitFailed     = "submit_failed"
	ErrCodeRetryFailed      = "retry_failed"

	// Break errors
	ErrCodeInvalidCredential = "invalid_break_credential"
	ErrCodeBreakUsed         = "break_already_used"
	ErrCodeBreakUnavailable  = "break_unavailable"

	// Catalog errors
	ErrCodeNoRecipes = "no_recipes_for_selection"

	// WebSocket errors
	ErrCodeInvalidPayload  = "invalid_payload"
	ErrCodeConnectionError = "connection_error"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)

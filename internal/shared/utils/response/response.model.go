package response

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"` // Human-readable message
	Data    interface{} `json:"data,omitempty"`    // Payload for success
	Error   string      `json:"error,omitempty"`   // User-facing error message
	Errors  interface{} `json:"errors,omitempty"`  // Per-field validation details
}

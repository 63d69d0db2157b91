package types

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Error   string      `json:"error"`             // Human-readable message
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// DeletedResponse confirms a delete operation.
type DeletedResponse struct {
	Status string `json:"status"`
	ID     uint   `json:"id"`
}

package engine

// REST API models shared by the wrapper's endpoints.

// Status represents the status of an operation
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
	StatusSuccess   Status = "success"
	StatusFailure   Status = "failure"
	StatusError     Status = "error"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  Status `json:"status"`
}

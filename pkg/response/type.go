package response

// Resp is the standard JSON envelope for service endpoints.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

// ErrorBody is the bare error shape returned by the webhook endpoint.
type ErrorBody struct {
	Error string `json:"error"`
}

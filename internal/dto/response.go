package dto

// APIResponse is the uniform envelope for every endpoint. Success bodies
// carry the payload in Data; failure bodies carry a nil Data, a client-safe
// Message, and an Errors detail list.
type APIResponse struct {
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors,omitempty"`
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(statusCode int, data any, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	}
}

// NewErrorResponse builds a failure envelope. Errors defaults to an empty
// list rather than nil.
func NewErrorResponse(statusCode int, message string, details []string) APIResponse {
	if details == nil {
		details = []string{}
	}
	return APIResponse{
		StatusCode: statusCode,
		Data:       nil,
		Message:    message,
		Success:    false,
		Errors:     details,
	}
}

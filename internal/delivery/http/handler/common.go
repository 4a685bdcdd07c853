package handler

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationResponse carries every violated rule of a rejected form, plus
// the identifier context a failed update keeps so the client can reopen
// the same record.
type ValidationResponse struct {
	Errors    []string `json:"errors"`
	ProfileID int      `json:"profile_id,omitempty"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

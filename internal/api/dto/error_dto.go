package dto

// ErrorResponse is the body of every failed request. Errors is only set for
// validation failures and maps a field name to its messages.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Errors  map[string]any `json:"errors,omitempty"`
}

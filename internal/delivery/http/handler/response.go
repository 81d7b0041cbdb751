package handler

// ErrorResponse is the uniform error payload returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

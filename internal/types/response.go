package types

// QueryResponse is the API reply for a successful inference query.
type QueryResponse struct {
	Answer string `json:"answer"`
	Raw    string `json:"raw,omitempty"`
}

// StateResponse mirrors the query client's view state for the page script.
type StateResponse struct {
	State  string `json:"state"`
	Answer string `json:"answer,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

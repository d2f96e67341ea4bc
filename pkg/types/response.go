package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// FlatMessage is the body shape the storefront's contact and order forms
// already consume: a bare message or error string with no envelope.
type FlatMessage struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Reference string `json:"reference,omitempty"`
}

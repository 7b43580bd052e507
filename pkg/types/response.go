package types

// Status carries the numeric code and human-readable message every API
// response opens with.
type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DataEnvelope wraps document responses.
type DataEnvelope struct {
	Status Status `json:"status"`
	Data   any    `json:"data"`
}

// InfoEnvelope wraps acknowledgement responses that carry no document.
type InfoEnvelope struct {
	Status Status `json:"status"`
	Info   string `json:"info"`
}

// ErrorEnvelope wraps failures. Error holds the machine-readable taxonomy
// code; the status message is safe to show to the operator.
type ErrorEnvelope struct {
	Status  Status `json:"status"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

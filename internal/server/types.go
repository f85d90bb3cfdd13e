package server

// EvaluateResponse is the JSON body returned by /evaluate.
type EvaluateResponse struct {
	// Series is the name of the evaluated series.
	Series string `json:"series" jsonschema:"description=Name of the evaluated series"`
	// X and A are the parameters the series was evaluated at.
	X float64 `json:"x"`
	A float64 `json:"a"`
	// Sum is the partial sum. It is omitted if an error occurred.
	Sum *float64 `json:"sum,omitempty" jsonschema:"description=Partial sum of the consumed terms"`
	// Terms is the number of terms summed.
	Terms int `json:"terms"`
	// Converged is false when the term limit stopped the sum.
	Converged bool `json:"converged"`
	// Shown holds the leading terms of the series.
	Shown []float64 `json:"shown,omitempty"`
	// Reference is the closed form value, if the series has one.
	Reference *float64 `json:"reference,omitempty"`
	// AbsError is |sum - reference|.
	AbsError *float64 `json:"abs_error,omitempty"`
	// WithinTolerance reports whether the sum matches the reference.
	WithinTolerance bool `json:"within_tolerance"`
	// Duration is the formatted evaluation time.
	Duration string `json:"duration"`
	// Error contains the error message if the evaluation failed.
	Error string `json:"error,omitempty"`
}

// SeriesInfo describes one entry of /series.
type SeriesInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// EvaluateParseError represents a parameter parsing error with HTTP status.
type EvaluateParseError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e EvaluateParseError) Error() string {
	return e.Message
}

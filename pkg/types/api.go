package types

// ThingRequest documents the body accepted by POST /things.
type ThingRequest struct {
	// Required flag. Bodies without it, or with a non-boolean value, are rejected with 422.
	// example: true
	ImportantField bool `json:"important_field" example:"true"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: Content-Type must be application/json
	Error string `json:"error" example:"Content-Type must be application/json"`
	// HTTP status code.
	// example: 415
	Code int `json:"code" example:"415"`
}

// IOErrorResponse is returned with 400 when the request body could not be read.
type IOErrorResponse struct {
	// I/O failure message.
	// example: http: request body too large
	Error string `json:"error" example:"http: request body too large"`
}

// ParseErrorResponse is returned with 422 when the body is not a valid thing.
type ParseErrorResponse struct {
	// Parse failure message with the position of the failure.
	// example: missing field `important_field` at line 1 column 2
	Error string "json:\"error\" example:\"missing field `important_field` at line 1 column 2\""
	// The raw request body, unchanged.
	// example: {}
	Input string `json:"input" example:"{}"`
}

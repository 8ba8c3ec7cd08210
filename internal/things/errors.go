package things

import "net/http"

// ErrorKind classifies a decode failure.
type ErrorKind int

const (
	// KindIO means the body could not be read as text (unreadable, too
	// large, or not UTF-8).
	KindIO ErrorKind = iota + 1
	// KindParse means the body was read but is not a valid Thing.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// DeserializeError is the failure half of a decode result. Input is only
// populated for KindParse.
type DeserializeError struct {
	Kind  ErrorKind
	Msg   string
	Input string
	cause error
}

func (e *DeserializeError) Error() string { return e.Msg }

func (e *DeserializeError) Unwrap() error { return e.cause }

// StatusCode maps the kind to the HTTP status returned to the client.
func (e *DeserializeError) StatusCode() int {
	if e.Kind == KindIO {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

func ioError(msg string, cause error) *DeserializeError {
	return &DeserializeError{Kind: KindIO, Msg: msg, cause: cause}
}

func parseError(input string, msg string, cause error) *DeserializeError {
	return &DeserializeError{Kind: KindParse, Msg: msg, Input: input, cause: cause}
}

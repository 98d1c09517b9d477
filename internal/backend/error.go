package backend

import "fmt"

// Kind separates errors the server rejected from errors that never got
// a usable response.
type Kind int

const (
	// KindTransport covers request construction, network and decode
	// failures. The server state is unknown.
	KindTransport Kind = iota
	// KindRejected means the server answered with success=false and a
	// human-readable message.
	KindRejected
)

// TransportMessage is the generic notice shown when no server message
// is available.
const TransportMessage = "could not reach the server"

// Error is the typed result of a failed backend call.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func transportErr(err error) *Error {
	return &Error{Kind: KindTransport, Message: TransportMessage, Err: err}
}

// UserMessage extracts the notice text for an error: the server's
// message when there is one, else the generic transport string.
func UserMessage(err error) string {
	if apiErr, ok := err.(*Error); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return TransportMessage
}

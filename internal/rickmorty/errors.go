package rickmorty

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed fetch.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindServer
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server error"
	case KindNetwork:
		return "network error"
	default:
		return "unknown error"
	}
}

// FetchError is returned by every Client fetch. Message is the user-facing
// text that ends up in the list state.
type FetchError struct {
	Kind    Kind
	Status  int // HTTP status, zero for transport failures
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// statusError maps an HTTP status to a FetchError.
func statusError(status int, path string) *FetchError {
	cause := fmt.Errorf("api %s returned status %d", path, status)
	switch status {
	case http.StatusNotFound:
		return &FetchError{Kind: KindNotFound, Status: status, Message: "Character not found", Err: cause}
	case http.StatusInternalServerError:
		return &FetchError{Kind: KindServer, Status: status, Message: "Server error, please try again later", Err: cause}
	default:
		return &FetchError{Kind: KindUnknown, Status: status, Message: "Something went wrong", Err: cause}
	}
}

func networkError(err error) *FetchError {
	return &FetchError{Kind: KindNetwork, Message: "Network error: " + err.Error(), Err: err}
}

// KindOf returns the kind of err, or KindUnknown when err is not a FetchError.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

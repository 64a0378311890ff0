package feed

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a fetch failed. Rendering never branches on it;
// the feed only ever shows the error message.
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindHTTPStatus
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http_status"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// FetchError is the single failure type of a fetch.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int // set for KindHTTPStatus
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
	case KindDecode:
		if e.Err == nil {
			return "decode articles"
		}
		return "decode articles: " + e.Err.Error()
	default:
		if e.Err == nil {
			return "network error"
		}
		return e.Err.Error()
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError unwraps err into a *FetchError when possible.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

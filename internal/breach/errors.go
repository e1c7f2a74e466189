package breach

import (
	"fmt"
	"net/http"
)

// NetworkError means the corpus could not be reached or answered with a
// non-200 status. The check is unavailable; it says nothing about whether
// the secret is breached.
type NetworkError struct {
	StatusCode int   // zero for transport failures
	Err        error // underlying transport error, if any
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("breach corpus: %s (status %d)", http.StatusText(e.StatusCode), e.StatusCode)
	}
	return fmt.Sprintf("breach corpus: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ProtocolError means the corpus answered but no line of the body could be
// parsed as SUFFIX:COUNT.
type ProtocolError struct {
	Lines int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("breach corpus: malformed response (%d unparsable lines)", e.Lines)
}

package advisor

import "fmt"

// MalformedResponseError signals that the model produced output the parser
// could not turn into a usable structure. It is distinct from transport
// failures so callers can map it to a dedicated status code.
type MalformedResponseError struct {
	Op     string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s response: %s", e.Op, e.Reason)
}

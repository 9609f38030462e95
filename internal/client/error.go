package client

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// A RemoteError is an error answered by the proxy or one of the services
// behind it. It is propagated verbatim, no retry and no translation happen
// at this layer.
type RemoteError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

// Error stringifies the error.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// IsNotFound returns true when err is a remote not-found answer.
func IsNotFound(err error) bool {
	re, ok := errors.Cause(err).(*RemoteError)
	return ok && re.Status == http.StatusNotFound
}

// decodeRemoteError builds the RemoteError of a non-2xx response. Bodies
// that do not carry the JSON error payload are kept as raw text.
func decodeRemoteError(resp *http.Response) error {
	re := &RemoteError{Status: resp.StatusCode}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(payload) == 0 {
		re.Message = http.StatusText(resp.StatusCode)
		return re
	}
	if err := json.Unmarshal(payload, re); err != nil || re.Message == "" {
		re.Message = strings.TrimSpace(string(payload))
	}
	return re
}

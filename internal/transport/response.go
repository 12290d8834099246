package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/mintmark/mintmark/pkg/errors"
)

// DecodeResponse decodes a JSON response into the target structure. Non-2xx
// statuses become APIError values tagged with the given service name so
// callers can classify not-found, rate-limit, and auth failures.
func DecodeResponse(service string, resp *http.Response, target any) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewAPIError(service, resp.StatusCode, string(body))
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}

// Discard drains and closes a response body, converting non-2xx statuses to
// APIError. Used for writes where the response payload does not matter.
func Discard(service string, resp *http.Response) error {
	return DecodeResponse(service, resp, nil)
}

package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopFiltered  = "filtered"
)

// completion is a backend reply before the shared checks in finish run.
type completion struct {
	text  string
	usage Usage
	model string
	stop  string
}

// finish turns a backend completion into a Response. Free-form answers
// are stored as a JSON string literal; structured answers must be a JSON
// object matching req.Schema. A reply cut off at the token limit is only
// an error for structured requests, where the JSON would be incomplete.
func finish(backend string, req Request, c completion) (*Response, error) {
	if c.stop == StopFiltered {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("%s withheld the answer (content filter)", backend)}
	}
	if strings.TrimSpace(c.text) == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("%s returned no text", backend)}
	}
	if c.usage.TotalTokens == 0 {
		c.usage.TotalTokens = c.usage.InputTokens + c.usage.OutputTokens
	}

	resp := &Response{Usage: c.usage, Model: c.model, StopReason: c.stop}
	if req.Schema == nil {
		resp.Content, _ = json.Marshal(c.text)
		return resp, nil
	}

	content := extractJSONObject(json.RawMessage(c.text))
	if c.stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	resp.Content = content
	return resp, nil
}

// statusError classifies a failed call by its HTTP status. Anything that
// is not an auth or quota problem is treated as the provider being
// unavailable, which the retry layer may retry.
func statusError(status int, retryAfter time.Duration, err error) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ErrUnauthorized{Err: err}
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get("Retry-After")))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// resolveModel maps a short alias to a model ID. Unknown names are used
// as given so any model ID can be configured directly.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

// chatRole maps a message role onto the user/assistant pair every
// backend understands, under the backend's own name for the assistant.
func chatRole(r Role, assistant string) string {
	if r == RoleAssistant {
		return assistant
	}
	return "user"
}

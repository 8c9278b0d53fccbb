package kong

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

type Kind string

const (
	KindBadRequest Kind = "bad_request"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindServer     Kind = "server"
	KindTransport  Kind = "transport"

	// 401/403 from the admin API: our credentials or its rbac, never the caller's input
	KindUnauthorized Kind = "unauthorized"
	KindThrottled    Kind = "throttled"
)

var ErrMissingIdentifier = errors.New("consumer needs a username or custom_id")

// a failed admin API call; StatusCode is 0 when no response arrived
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("kong api error: %s", e.Message)
	}

	return fmt.Sprintf("kong api error %d: %s", e.StatusCode, e.Message)
}

func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

func IsConflict(err error) bool {
	return hasKind(err, KindConflict)
}

func IsBadRequest(err error) bool {
	return hasKind(err, KindBadRequest)
}

// reports whether the gateway could not be reached or answered 5xx
func IsUnavailable(err error) bool {
	return hasKind(err, KindServer) || hasKind(err, KindTransport)
}

func hasKind(err error, kind Kind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusTooManyRequests:
		return KindThrottled
	case status >= 500:
		return KindServer
	default:
		return KindBadRequest
	}
}

// builds an APIError from a non-2xx response body
func newAPIError(status int, body []byte) *APIError {
	detail := strings.TrimSpace(string(body))

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		detail = parsed.Message
		if fields := formatFields(parsed.Fields); fields != "" {
			detail += " (" + fields + ")"
		}
	}

	if detail == "" {
		detail = http.StatusText(status)
	}

	kind := kindForStatus(status)

	return &APIError{
		Kind:       kind,
		StatusCode: status,
		Message:    describe(kind, detail),
	}
}

func describe(kind Kind, detail string) string {
	switch kind {
	case KindBadRequest:
		return "bad request: " + detail + ". Check the request payload"
	case KindNotFound:
		return "resource not found: " + detail
	case KindConflict:
		return "conflict: " + detail + ". The resource may already exist"
	case KindUnauthorized:
		return "admin api rejected credentials: " + detail
	case KindThrottled:
		return "rate limited by admin api: " + detail
	default:
		return detail
	}
}

func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, fields[k]))
	}

	return strings.Join(parts, ", ")
}

// masks a credential for logging, keeping the first eight characters
func maskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}

	return key[:8] + "***"
}

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
	ErrBackend      = errors.New("backend error")
)

// Kind classifies a failed request.
type Kind int

const (
	// KindBackend is any non-2xx response other than 401.
	KindBackend Kind = iota
	// KindUnauthorized is a 401; the session has already been cleared.
	KindUnauthorized
	// KindNetwork means no response was received.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNetwork:
		return "network"
	default:
		return "backend"
	}
}

// APIError is returned by every APIClient call that did not produce a 2xx.
//
// Body holds the raw response payload untouched. Message and Fields are a
// best-effort reading of it: a JSON string, or a single-member object keyed
// "message", "error" or "detail", becomes Message; any other object becomes
// Fields (string and string-list members kept as lists).
type APIError struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Body    []byte
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Kind == KindNetwork:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	case len(e.Fields) > 0:
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, FormatFields(e.Fields))
	default:
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	}
}

// Is maps the kind to the package sentinels so callers can use errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrUnavailable:
		return e.Kind == KindNetwork
	case ErrBackend:
		return e.Kind == KindBackend
	}
	return false
}

func (e *APIError) Unwrap() error { return e.Err }

// AsAPIError unwraps err to *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

var messageKeys = []string{"message", "error", "detail"}

// decodeErrorBody reads Message/Fields out of a response payload.
func decodeErrorBody(body []byte) (string, map[string][]string) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		// not a JSON object; keep a short plain-text body as the message
		if len(trimmed) <= 200 && !strings.HasPrefix(trimmed, "<") && !strings.HasPrefix(trimmed, "[") {
			return trimmed, nil
		}
		return "", nil
	}

	if len(obj) == 1 {
		for _, k := range messageKeys {
			if raw, ok := obj[k]; ok {
				if err := json.Unmarshal(raw, &s); err == nil {
					return s, nil
				}
			}
		}
	}

	fields := make(map[string][]string, len(obj))
	for k, raw := range obj {
		var one string
		var many []string
		switch {
		case json.Unmarshal(raw, &one) == nil:
			fields[k] = []string{one}
		case json.Unmarshal(raw, &many) == nil:
			fields[k] = many
		default:
			fields[k] = []string{string(raw)}
		}
	}
	return "", fields
}

// FormatFields renders a field map as "field: err1, err2" lines in key order.
func FormatFields(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+strings.Join(fields[k], ", "))
	}
	return strings.Join(lines, "\n")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/pnum-lookup/pkg/types"
)

// ErrorMessageField is the response field the registry uses for error details.
const ErrorMessageField = "Error message"

// Response is a completed registry request.
type Response struct {
	// URL is the final request URL, after redirects.
	URL        string
	StatusCode int
	Body       []byte
	RequestID  string
}

// OK reports whether the registry answered 200.
func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Fields decodes the body as a JSON object. Numbers are kept as json.Number
// so they print exactly as received.
func (r *Response) Fields() (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("parsing response body: %w", err)
	}
	return fields, nil
}

// ErrorMessage returns the registry's error message, if the body carries one.
func (r *Response) ErrorMessage() (string, bool) {
	fields, err := r.Fields()
	if err != nil {
		return "", false
	}
	v, ok := fields[ErrorMessageField]
	if !ok {
		return "", false
	}
	return FieldString(v), true
}

// Action returns the action the response was requested for.
func (r *Response) Action() types.Action {
	return FindAction(r.URL)
}

// Pnum returns the personal number the response was requested for, or "".
func (r *Response) Pnum() string {
	return FindPnum(r.URL)
}

// FindAction returns the first action, in types.Actions order, whose name
// occurs anywhere in rawURL. It returns "" when none matches.
func FindAction(rawURL string) types.Action {
	for _, a := range types.Actions {
		if strings.Contains(rawURL, string(a)) {
			return a
		}
	}
	return ""
}

// FindPnum returns the last path segment of rawURL when the URL splits into
// exactly six slash-separated parts (scheme, empty, host, prefix, action,
// pnum). Otherwise the URL carries no pnum and "" is returned.
func FindPnum(rawURL string) string {
	parts := strings.Split(rawURL, "/")
	if len(parts) == 6 {
		return strings.TrimSpace(parts[len(parts)-1])
	}
	return ""
}

// FieldString renders a decoded JSON value for display.
func FieldString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case nil:
		return "null"
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}

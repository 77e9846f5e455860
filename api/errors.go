package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed backend call. The kind is decided once, at the
// transport boundary, so callers never inspect message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindUnauthorized
	KindForbidden
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the single failure type produced by the client. Status is zero
// for failures that never received an HTTP response.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("backend: %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("backend: %s: %s", e.Kind, e.Message)
}

// IsForbidden reports whether err is a backend denial (HTTP 403).
func IsForbidden(err error) bool { return hasKind(err, KindForbidden) }

// IsUnauthorized reports whether err is a credential rejection (HTTP 401).
func IsUnauthorized(err error) bool { return hasKind(err, KindUnauthorized) }

// IsNotFound reports whether err is an HTTP 404.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

func hasKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

func classify(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindUnknown
	}
}

// errorMessage extracts a human-readable message from an error body. The
// backend is FastAPI-flavoured and uses {"detail": ...}; OAuth-style bodies
// carry error_description/error. Anything unparseable falls back to the
// numeric status.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Detail           json.RawMessage `json:"detail"`
		ErrorDescription string          `json:"error_description"`
		Err              string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if len(payload.Detail) > 0 {
			var s string
			if err := json.Unmarshal(payload.Detail, &s); err == nil && s != "" {
				return s
			}
			// Validation errors arrive as structured detail; keep them raw.
			return string(payload.Detail)
		}
		if payload.ErrorDescription != "" {
			return payload.ErrorDescription
		}
		if payload.Err != "" {
			return payload.Err
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}

package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/topi314/academy-dashboard/internal/xstrconv"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNoTeam       = errors.New("player does not belong to any team")
	ErrUnauthorized = errors.New("unauthorized")
)

// Envelope is the response wrapper of the backend. Any field may be missing.
type Envelope struct {
	Success *bool           `json:"success"`
	Status  json.RawMessage `json:"status"`
	Message Text            `json:"message"`
	Errors  json.RawMessage `json:"errors"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

var envelopeKeys = []string{"success", "status", "message", "data", "meta", "errors"}

// decodeEnvelope accepts an envelope or a bare payload, which is then treated as data.
func decodeEnvelope(data []byte) (*Envelope, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &Envelope{}, nil
	}

	if data[0] != '{' {
		if !json.Valid(data) {
			return nil, errors.New("response is not json")
		}
		return &Envelope{Data: data}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	isEnvelope := false
	for _, key := range envelopeKeys {
		if _, ok := fields[key]; ok {
			isEnvelope = true
			break
		}
	}
	if !isEnvelope {
		return &Envelope{Data: data}, nil
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (e *Envelope) succeeded(statusCode int) bool {
	if statusCode >= http.StatusBadRequest {
		return false
	}
	if e.Success != nil {
		return *e.Success
	}
	if ok, known := e.statusOK(); known {
		return ok
	}
	return statusCode >= 200 && statusCode < 300
}

func (e *Envelope) statusOK() (ok bool, known bool) {
	status := bytes.TrimSpace(e.Status)
	if len(status) == 0 || string(status) == "null" {
		return false, false
	}

	var s string
	if err := json.Unmarshal(status, &s); err != nil {
		s = string(status)
	}

	if code, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return code >= 200 && code < 300, true
	}
	if ok, err := xstrconv.ParseBool(s); err == nil {
		return ok, true
	}
	return false, false
}

func (e *Envelope) asError(statusCode int) *Error {
	msg := string(e.Message)
	if msg == "" {
		msg = firstValidationMessage(e.Errors)
	}
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	if msg == "" {
		msg = "request failed"
	}
	return &Error{
		StatusCode: statusCode,
		Message:    msg,
	}
}

// firstValidationMessage reads {"field": ["message"]} style validation errors.
func firstValidationMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var fields map[string][]string
	if err := json.Unmarshal(raw, &fields); err == nil {
		for _, msgs := range fields {
			if len(msgs) > 0 {
				return msgs[0]
			}
		}
	}
	var msgs []string
	if err := json.Unmarshal(raw, &msgs); err == nil && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Error is a failed backend response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Message)
}

func (e *Error) Is(target error) bool {
	msg := strings.ToLower(e.Message)
	switch target {
	case ErrNoTeam:
		return strings.Contains(msg, "does not belong to any team")
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound || strings.Contains(msg, "not found")
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// Message extracts the human readable part of err for notices.
func Message(err error) string {
	var backendErr *Error
	if errors.As(err, &backendErr) {
		return backendErr.Message
	}
	return err.Error()
}

func decodeData[T any](env *Envelope) (T, error) {
	var v T
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || string(data) == "null" {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("failed to decode data: %w", err)
	}
	return v, nil
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/dmitrijs2005/wardrobe/internal/common"
)

// APIError is a non-2xx backend response. Kind is one of the common
// sentinel errors, so errors.Is(err, common.ErrUnauthorized) works.
type APIError struct {
	Kind    error
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// errorBody is the FastAPI error envelope.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// detailMessage extracts a readable message from a detail field, which is a
// string for HTTPException and a list of objects for validation errors.
func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(raw, &items) == nil && len(items) > 0 && items[0].Msg != "" {
		return items[0].Msg
	}
	return ""
}

func newAPIError(status int, body []byte) *APIError {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	msg := detailMessage(eb.Detail)

	if status == http.StatusUnauthorized {
		if msg == "" {
			msg = "Unauthorized"
		}
		return &APIError{Kind: common.ErrUnauthorized, Status: status, Message: msg}
	}

	if msg == "" {
		msg = "Request failed"
	}
	return &APIError{Kind: common.ErrRequestFailed, Status: status, Message: msg}
}

// mapTransportError classifies a failure to get any response at all.
func mapTransportError(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%w: %v", common.ErrNetworkTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrNetworkFailure, err)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

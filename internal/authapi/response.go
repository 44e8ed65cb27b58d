package authapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// LoginResponse is the part of a login reply that drives the page.
//
// Token and Message hold the textual form of result.token and message when
// those are truthy, and are empty otherwise.
type LoginResponse struct {
	Token      string
	Message    string
	StatusCode int
}

// Succeeded reports whether the reply carried a token.
func (r LoginResponse) Succeeded() bool {
	return r.Token != ""
}

// ParseLoginResponse decodes a login reply body. Any JSON value is accepted;
// only an object can carry a token or a message.
func ParseLoginResponse(raw []byte) (LoginResponse, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return LoginResponse{}, fmt.Errorf("decode login response: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return LoginResponse{}, errors.New("decode login response: trailing data after JSON value")
	}

	obj, ok := body.(map[string]any)
	if !ok {
		return LoginResponse{}, nil
	}

	var out LoginResponse
	if result, ok := obj["result"].(map[string]any); ok {
		out.Token = truthyText(result["token"])
	}
	out.Message = truthyText(obj["message"])
	return out, nil
}

// truthyText returns "" for falsy JSON values and a textual form otherwise.
func truthyText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "true"
		}
		return ""
	case string:
		return v
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return ""
		}
		return v.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

package authapi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLoginResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want LoginResponse
	}{
		{name: "token", body: `{"result":{"token":"abc"}}`, want: LoginResponse{Token: "abc"}},
		{name: "token wins over message", body: `{"result":{"token":"abc"},"message":"ignored"}`, want: LoginResponse{Token: "abc", Message: "ignored"}},
		{name: "message", body: `{"message":"Invalid credentials"}`, want: LoginResponse{Message: "Invalid credentials"}},
		{name: "empty object", body: `{}`, want: LoginResponse{}},
		{name: "empty token", body: `{"result":{"token":""}}`, want: LoginResponse{}},
		{name: "null result", body: `{"result":null,"message":""}`, want: LoginResponse{}},
		{name: "result not an object", body: `{"result":"abc"}`, want: LoginResponse{}},
		{name: "numeric token", body: `{"result":{"token":42}}`, want: LoginResponse{Token: "42"}},
		{name: "zero token", body: `{"result":{"token":0}}`, want: LoginResponse{}},
		{name: "false message", body: `{"message":false}`, want: LoginResponse{}},
		{name: "true token", body: `{"result":{"token":true}}`, want: LoginResponse{Token: "true"}},
		{name: "object message", body: `{"message":{"a":1}}`, want: LoginResponse{Message: `{"a":1}`}},
		{name: "array body", body: `[1,2]`, want: LoginResponse{}},
		{name: "null body", body: `null`, want: LoginResponse{}},
		{name: "string body", body: `"hello"`, want: LoginResponse{}},
		{name: "trailing whitespace", body: "{\"message\":\"x\"}\n\t ", want: LoginResponse{Message: "x"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLoginResponse([]byte(tc.body))
			if err != nil {
				t.Fatalf("ParseLoginResponse(%s) error = %v", tc.body, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ParseLoginResponse(%s) mismatch (-want +got):\n%s", tc.body, diff)
			}
		})
	}
}

func TestParseLoginResponseRejectsNonJSON(t *testing.T) {
	tests := []string{"", "   ", "<html>", `{"message":`, `{} {}`, `{}x`}

	for _, body := range tests {
		if _, err := ParseLoginResponse([]byte(body)); err == nil {
			t.Fatalf("ParseLoginResponse(%q) error = nil, want error", body)
		}
	}
}

func TestSucceeded(t *testing.T) {
	if (LoginResponse{}).Succeeded() {
		t.Fatal("empty response must not succeed")
	}
	if !(LoginResponse{Token: "abc"}).Succeeded() {
		t.Fatal("response with token must succeed")
	}
}

package httpstatus

import "testing"

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected string
	}{
		{"ok", 200, "200 OK"},
		{"created", 201, "201 Created"},
		{"not found", 404, "404 Not Found"},
		{"teapot", 418, "418 I'm a teapot"},
		{"server error", 500, "500 Internal Server Error"},
		{"unknown code", 799, "799 Unknown Status"},
		{"unknown low code", 1, "1 Unknown Status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.code); got != tt.expected {
				t.Errorf("Describe(%d) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestStatusClasses(t *testing.T) {
	tests := []struct {
		code                              int
		success, redirect, client, server bool
	}{
		{200, true, false, false, false},
		{204, true, false, false, false},
		{301, false, true, false, false},
		{404, false, false, true, false},
		{503, false, false, false, true},
		{0, false, false, false, false},
	}

	for _, tt := range tests {
		if got := IsSuccess(tt.code); got != tt.success {
			t.Errorf("IsSuccess(%d) = %v, want %v", tt.code, got, tt.success)
		}
		if got := IsRedirect(tt.code); got != tt.redirect {
			t.Errorf("IsRedirect(%d) = %v, want %v", tt.code, got, tt.redirect)
		}
		if got := IsClientError(tt.code); got != tt.client {
			t.Errorf("IsClientError(%d) = %v, want %v", tt.code, got, tt.client)
		}
		if got := IsServerError(tt.code); got != tt.server {
			t.Errorf("IsServerError(%d) = %v, want %v", tt.code, got, tt.server)
		}
	}
}

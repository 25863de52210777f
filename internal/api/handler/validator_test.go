package handler

import (
	"strings"
	"testing"
)

func TestValidatorMessages(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "missing required field",
			in:   &registerRequest{Email: "ana@example.com", Password: "longenough", Role: "ATTENDEE"},
			want: "name is required",
		},
		{
			name: "malformed email",
			in:   &registerRequest{Name: "Ana", Email: "not-an-email", Password: "longenough", Role: "ATTENDEE"},
			want: "email must be a valid email address",
		},
		{
			name: "short password reports character length",
			in:   &registerRequest{Name: "Ana", Email: "ana@example.com", Password: "short", Role: "ATTENDEE"},
			want: "password must be at least 8 characters",
		},
		{
			name: "role outside the enum",
			in:   &registerRequest{Name: "Ana", Email: "ana@example.com", Password: "longenough", Role: "ADMIN"},
			want: "role must be one of: COMMUNITY_LEADER SPEAKER ATTENDEE COLLABORATOR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("message %q does not contain %q", err.Error(), tt.want)
			}
		})
	}

	if err := v.Validate(&registerRequest{
		Name: "Ana", Email: "ana@example.com", Password: "longenough", Role: "ATTENDEE",
	}); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}
}

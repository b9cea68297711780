package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name string
		in   Registration
		want error
	}{
		{
			name: "valid",
			in:   Registration{Username: "alice", Password: "password1", ConfirmPassword: "password1"},
		},
		{
			name: "exactly eight characters",
			in:   Registration{Password: "12345678", ConfirmPassword: "12345678"},
		},
		{
			name: "mismatch",
			in:   Registration{Password: "password1", ConfirmPassword: "password2"},
			want: ErrPasswordMismatch,
		},
		{
			name: "mismatch wins over weak",
			in:   Registration{Password: "short", ConfirmPassword: "shorter"},
			want: ErrPasswordMismatch,
		},
		{
			name: "weak",
			in:   Registration{Username: "alice", Password: "short", ConfirmPassword: "short"},
			want: ErrWeakPassword,
		},
		{
			name: "empty",
			in:   Registration{},
			want: ErrWeakPassword,
		},
		{
			name: "multibyte counted as characters",
			in:   Registration{Password: "パスワードです!!", ConfirmPassword: "パスワードです!!"},
		},
		{
			name: "longer than bcrypt input limit",
			in:   Registration{Password: strings.Repeat("a", 200), ConfirmPassword: strings.Repeat("a", 200)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.in)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	cases := map[*ValidationError]string{
		ErrPasswordMismatch:   "Passwords do not match.",
		ErrWeakPassword:       "Password must be at least 8 characters long.",
		ErrDuplicateUsername:  "Username already exists.",
		ErrInvalidCredentials: "Invalid username or password.",
	}
	for err, want := range cases {
		if err.Error() != want {
			t.Fatalf("%s: message = %q, want %q", err.Code, err.Error(), want)
		}
	}
}

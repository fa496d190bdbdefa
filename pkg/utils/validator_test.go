package utils

import (
	"errors"
	"testing"
	"time"
)

func TestValidateEmailFormat(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.cn",
		"a+tag@example.io",
		"", // 空字符串不做格式校验，由业务逻辑决定是否必填
		"  user@example.com  ",
	}
	for _, email := range valid {
		if !ValidateEmailFormat(email) {
			t.Errorf("ValidateEmailFormat(%q) = false, want true", email)
		}
	}

	invalid := []string{
		"not-an-email",
		"missing@tld",
		"@example.com",
		"user@.com",
	}
	for _, email := range invalid {
		if ValidateEmailFormat(email) {
			t.Errorf("ValidateEmailFormat(%q) = true, want false", email)
		}
	}
}

func TestValidateUUID(t *testing.T) {
	if err := ValidateUUID("9b2d7b64-7d1e-4c58-9f2a-30a6a2bfe001"); err != nil {
		t.Errorf("valid uuid rejected: %v", err)
	}
	if err := ValidateUUID("not-a-uuid"); !errors.Is(err, ErrInvalidUUIDFormat) {
		t.Errorf("invalid uuid error = %v, want ErrInvalidUUIDFormat", err)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		input string
		want  time.Time
	}{
		{"2026-08-30", time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)},
		{"2026/8/5", time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)},
		{"2026-8-05", time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.input)
		if err != nil {
			t.Errorf("ParseDate(%q) returned error: %v", tc.input, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}

	if _, err := ParseDate("2026-08-30T10:00:00Z"); err != nil {
		t.Errorf("RFC3339 input rejected: %v", err)
	}

	for _, input := range []string{"", "30-08-2026", "abc"} {
		if _, err := ParseDate(input); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDateFormat", input, err)
		}
	}
}

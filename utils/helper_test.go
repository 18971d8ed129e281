package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDecimalLoose(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"20000", "20000", false},
		{"20,000", "20000", false},
		{"$ 20,000", "20000", false},
		{"USD -20,000", "-20000", false},
		{"1,234.56", "1234.56", false},
		{"-0.01", "-0.01", false},
		{"  42  ", "42", false},
		{"", "", true},
		{"abc", "", true},
		{"$", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDecimalLoose(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseDecimalLoose(%q) = %s, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimalLoose(%q): %v", tc.in, err)
			}
			want, _ := decimal.NewFromString(tc.want)
			if !got.Equal(want) {
				t.Errorf("ParseDecimalLoose(%q) = %s, want %s", tc.in, got, want)
			}
		})
	}
}

func TestFormatAccountingAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"90", "90.00"},
		{"1234.5", "1,234.50"},
		{"-1234.5", "(1,234.50)"},
		{"1000000", "1,000,000.00"},
		{"-0.004", "(0.00)"}, // rounds to zero but the sign still shows
		{"999", "999.00"},
		{"-50", "(50.00)"},
	}

	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("bad case %q: %v", tc.in, err)
		}
		got := FormatAccountingAmount(d)
		if got != tc.want {
			t.Errorf("FormatAccountingAmount(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "john.carter@example.com", "x+tag@sub.domain.org"}
	invalid := []string{"", "plainaddress", "@no-local.com", "user@domain", "user @domain.com"}

	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = true, want false", e)
		}
	}
}

func TestExecTemplate(t *testing.T) {
	sqlT := `SELECT 1 {{- if .agentId }} WHERE agent_id = @agentId {{- end }}`

	got, err := ExecTemplate(sqlT, map[string]interface{}{"agentId": 5})
	if err != nil {
		t.Fatalf("ExecTemplate: %v", err)
	}
	if got != "SELECT 1 WHERE agent_id = @agentId" {
		t.Errorf("with agentId: %q", got)
	}

	got, err = ExecTemplate(sqlT, map[string]interface{}{"agentId": 0})
	if err != nil {
		t.Fatalf("ExecTemplate: %v", err)
	}
	if got != "SELECT 1" {
		t.Errorf("without agentId: %q", got)
	}
}

func TestGetDayRange(t *testing.T) {
	at := time.Date(2026, time.March, 15, 13, 45, 12, 0, time.UTC)
	start, end := GetDayRange(at)

	if !start.Equal(time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}
}

func TestGetYearRange(t *testing.T) {
	start, end := GetYearRange(2026)
	if start.Year() != 2026 || start.Month() != time.January || start.Day() != 1 {
		t.Errorf("start = %v", start)
	}
	if end.Year() != 2027 || end.Month() != time.January || end.Day() != 1 {
		t.Errorf("end = %v", end)
	}
}

func TestDereferencePtr(t *testing.T) {
	v := 7
	if got := DereferencePtr(&v); got != 7 {
		t.Errorf("DereferencePtr(&7) = %d", got)
	}
	if got := DereferencePtr[int](nil); got != 0 {
		t.Errorf("DereferencePtr(nil) = %d, want zero value", got)
	}
	if got := DereferencePtr(nil, 3); got != 3 {
		t.Errorf("DereferencePtr(nil, 3) = %d, want default", got)
	}
}

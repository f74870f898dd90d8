package util

import "testing"

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"no-at-sign", false},
		{"user@nodot", false},
		{"@example.com", false},
	}
	for _, c := range cases {
		if got := ValidateEmail(c.email); got != c.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", c.email, got, c.want)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	if ValidateUsername("ab") {
		t.Error("expected username shorter than 3 characters to be rejected")
	}
	if !ValidateUsername("abc") {
		t.Error("expected 3-character username to be accepted")
	}
	long := make([]byte, 31)
	for i := range long {
		long[i] = 'a'
	}
	if ValidateUsername(string(long)) {
		t.Error("expected username longer than 30 characters to be rejected")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Abcdef1!", true},
		{"abcdef1!", false}, // no uppercase
		{"ABCDEF1!", false}, // no lowercase
		{"Abcdefg!", false}, // no digit
		{"Abcdefg1", false}, // no special
		{"Ab1!", false},     // too short
	}
	for _, c := range cases {
		if got := ValidatePassword(c.password); got != c.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", c.password, got, c.want)
		}
	}
}

func TestValidateMonth(t *testing.T) {
	for _, month := range []int{1, 6, 12} {
		if !ValidateMonth(month) {
			t.Errorf("expected month %d to be valid", month)
		}
	}
	for _, month := range []int{0, 13, -1} {
		if ValidateMonth(month) {
			t.Errorf("expected month %d to be invalid", month)
		}
	}
}

func TestValidateTransactionType(t *testing.T) {
	if !ValidateTransactionType("income") || !ValidateTransactionType("expense") {
		t.Error("expected income and expense to be valid")
	}
	for _, typ := range []string{"", "transfer", "Income", "EXPENSE"} {
		if ValidateTransactionType(typ) {
			t.Errorf("expected type %q to be invalid", typ)
		}
	}
}

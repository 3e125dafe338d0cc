package priceformat

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{99999, "99,999"},
		{100000, "1,00,000"},
		{1234567, "12,34,567"},
		{123456789, "12,34,56,789"},
		{1234.5, "1,234.5"},
		{1234.567, "1,234.57"},
		{-1234567, "-12,34,567"},
		{-0.001, "0"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12,34,567", 1234567, false},
		{"₹ 1,500", 1500, false},
		{"Rs. 250.75", 250.75, false},
		{"INR 10", 10, false},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"-1,250.5", -1250.5, false},
		{"1e3", 0, true},
		{"0x1p4", 0, true},
		{"+5", 0, true},
		{"1.2.3", 0, true},
		{"5-", 0, true},
		{"-", 0, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Parse(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidPrice) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidPrice", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, 42.5, 1234567, 98765.43, 100000000} {
		got, err := Parse(Format(v))
		if err != nil {
			t.Fatalf("Parse(Format(%v)): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %v -> %q -> %v", v, Format(v), got)
		}
	}
}

func TestParseNonNegative(t *testing.T) {
	if _, err := ParseNonNegative("-5"); err == nil {
		t.Fatal("expected error for negative price")
	}
	if v, err := ParseNonNegative("5,000"); err != nil || v != 5000 {
		t.Fatalf("ParseNonNegative = %v, %v", v, err)
	}
}

package normalizer

import (
	"errors"
	"testing"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"slash separated", "01/02/2022", "01-02-2022"},
		{"dash separated", "15-03-2021", "15-03-2021"},
		{"single digit day and month", "5/3/2022", "05-03-2022"},
		{"two digit year", "01/02/22", "01-02-2022"},
		{"dotted", "31.12.2020", "31-12-2020"},
		{"abbreviated month", "02 Jan 2022", "02-01-2022"},
		{"dashed month name", "02-Jan-2022", "02-01-2022"},
		{"iso", "2022-02-01", "01-02-2022"},
		{"lowercase month via fallback", "7 nov 2022", "07-11-2022"},
		{"day first wins over month first", "01/02/03", "01-02-2003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Date(tt.input)
			if err != nil {
				t.Fatalf("Date(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Date(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateIdempotent(t *testing.T) {
	inputs := []string{"01-02-2022", "31-12-1999", "05-03-2022"}
	for _, in := range inputs {
		got, err := Date(in)
		if err != nil {
			t.Fatalf("Date(%q) error: %v", in, err)
		}
		if got != in {
			t.Errorf("Date(%q) = %q, want it unchanged", in, got)
		}
	}
}

func TestDateUnparseable(t *testing.T) {
	inputs := []string{"", "NA", "Service Charge", "32/01/2022", "31/02/2022", "12/13/2022 extra"}
	for _, in := range inputs {
		if got, err := Date(in); err == nil {
			t.Errorf("Date(%q) = %q, want error", in, got)
		} else if !errors.Is(err, ErrUnparseableDate) {
			t.Errorf("Date(%q) error = %v, want ErrUnparseableDate", in, err)
		}
	}
}

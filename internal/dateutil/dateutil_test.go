package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "YYYY", format: "YYYY", want: "2006"},
		{name: "YY", format: "YY", want: "06"},
		{name: "MMMM", format: "MMMM", want: "January"},
		{name: "MMM", format: "MMM", want: "Jan"},
		{name: "MM", format: "MM", want: "01"},
		{name: "M", format: "M", want: "1"},
		{name: "DD", format: "DD", want: "02"},
		{name: "D", format: "D", want: "2"},
		{name: "ISO", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "european", format: "DD/MM/YYYY", want: "02/01/2006"},
		{name: "long", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "bracket literal", format: "[Lecture of] D MMM", want: "Lecture of 2 Jan"},
		{name: "empty", format: "", wantErr: ErrInvalidDateFormat},
		{name: "too long", format: strings.Repeat("Y", MaxDateFormatLength+1), wantErr: ErrInvalidDateFormat},
		{name: "unclosed bracket", format: "[Week YYYY", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDateFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{name: "empty passthrough", value: "", want: ""},
		{name: "literal passthrough", value: "Spring term", want: "Spring term"},
		{name: "today", value: "today", want: `\today`},
		{name: "today case-insensitive", value: " Today ", want: `\today`},
		{name: "auto", value: "auto", want: "2026-03-07"},
		{name: "AUTO uppercase", value: "AUTO", want: "2026-03-07"},
		{name: "auto custom format", value: "auto:DD/MM/YYYY", want: "07/03/2026"},
		{name: "auto preset", value: "auto:long", want: "March 7, 2026"},
		{name: "auto preset uppercase", value: "auto:US", want: "03/07/2026"},
		{name: "auto without colon", value: "autodate", wantErr: ErrInvalidDateFormat},
		{name: "auto empty format", value: "auto:", wantErr: ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveDate(tt.value, fixed)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveDate(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDate(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ResolveDate(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

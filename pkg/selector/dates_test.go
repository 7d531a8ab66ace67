package selector

import "testing"

func TestDateKey(t *testing.T) {
	tests := []struct {
		date  string
		year  int
		month int
	}{
		{"Jan 2024", 2024, 1},
		{"March 2019", 2019, 3},
		{"2021", 2021, 12},
		{"Present", 9999, 12},
		{"current", 9999, 12},
		{"Now", 9999, 12},
		{"", 0, 0},
		{"whenever", 0, 0},
		{"  Sep 2022  ", 2022, 9},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			year, month := dateKey(tt.date)
			if year != tt.year || month != tt.month {
				t.Errorf("Expected (%d, %d) for %q, got (%d, %d)", tt.year, tt.month, tt.date, year, month)
			}
		})
	}
}

func TestDateLess(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected bool
	}{
		{"Jan 2020", "Feb 2020", true},
		{"Dec 2019", "Jan 2020", true},
		{"Mar 2024", "Present", true},
		{"Present", "Mar 2024", false},
		{"", "1990", true},
		{"Jun 2021", "Jun 2021", false},
	}

	for _, tt := range tests {
		if got := dateLess(tt.a, tt.b); got != tt.expected {
			t.Errorf("Expected dateLess(%q, %q) == %v, got %v", tt.a, tt.b, tt.expected, got)
		}
	}
}

package expand

import "testing"

func TestIsNoise(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"290", true},
		{"  700  ", true},
		{"- 700", true},
		{"-700", true},
		{"/ vikar", true},
		{"*note", true},
		{"%", true},
		{"+2", true},
		{"", true},
		{"   ", true},
		{"1290", false},
		{"29", false},
		{"100a", false},
		{"VITA dagtid", false},
		{"bf", false},
		{"08:00 - 16:00", false},
		{"ø-vagt", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := IsNoise(tt.text); got != tt.want {
				t.Errorf("IsNoise(%q) = %v, expected %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsTimeLine(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"08:00 - 16:00", true},
		{"08:00-16:00", true},
		{"  7:45 - 15:30 100", true},
		{"VITA dagtid 07:45 - 15:30", false}, // range not at line start
		{"0800", false},
		{"100", false},
		{"08:00", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := IsTimeLine(tt.text); got != tt.want {
				t.Errorf("IsTimeLine(%q) = %v, expected %v", tt.text, got, tt.want)
			}
		})
	}
}

package main

import "testing"

func TestResolveTheme(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }

	tests := []struct {
		name       string
		configured string
		background func() bool
		want       string
	}{
		{"configured wins", "catppuccin", light, "catppuccin"},
		{"unset on dark terminal", "", dark, "dark"},
		{"unset on light terminal", "", light, "light"},
		{"unknown falls back", "solarized", light, "light"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveTheme(tt.configured, tt.background); got != tt.want {
				t.Errorf("want %s, got %s", tt.want, got)
			}
		})
	}
}

package style

import "testing"

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("dark") })

	if !SetTheme("light") {
		t.Fatal("light theme should exist")
	}
	if CurrentThemeName != "light" {
		t.Errorf("want current theme light, got %s", CurrentThemeName)
	}
	if Primary != lightTheme.Primary {
		t.Errorf("Primary not swapped: %v", Primary)
	}
	if StateRunning.GetForeground() != lightTheme.Primary {
		t.Errorf("styles not rebuilt after theme switch")
	}
}

func TestSetTheme_UnknownIsIgnored(t *testing.T) {
	if SetTheme("solarized") {
		t.Error("unknown theme should report false")
	}
	if CurrentThemeName != "dark" {
		t.Errorf("theme changed to %s", CurrentThemeName)
	}
}

func TestThemeNames_MatchThemes(t *testing.T) {
	for _, name := range ThemeNames {
		if _, ok := Themes[name]; !ok {
			t.Errorf("ThemeNames lists %q but Themes lacks it", name)
		}
	}
}

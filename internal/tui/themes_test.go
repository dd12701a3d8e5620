package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func snapshotThemeState() ([]Theme, int) {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return append([]Theme(nil), themes...), activeThemeIdx
}

func restoreThemeState(saved []Theme, savedIdx int) {
	themeMu.Lock()
	defer themeMu.Unlock()

	themes = append([]Theme(nil), saved...)
	if savedIdx < 0 || savedIdx >= len(themes) {
		savedIdx = defaultThemeIndex(themes)
	}
	activeThemeIdx = savedIdx
	applyTheme(themes[activeThemeIdx])
}

func writeThemeFile(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write theme file %s: %v", path, err)
	}
}

func externalThemeJSON(name, accent string) string {
	return `{
  "name": "` + name + `",
  "base": "#111111",
  "surface0": "#232323",
  "surface1": "#303030",
  "text": "#E8E8E8",
  "subtext": "#BDBDBD",
  "dim": "#7F7F7F",
  "accent": "` + accent + `",
  "blue": "#CFCFCF",
  "sapphire": "#BBBBBB",
  "green": "#ABABAB",
  "yellow": "#9A9A9A",
  "red": "#878787",
  "lavender": "#C4C4C4"
}`
}

func TestDefaultThemeIsActive(t *testing.T) {
	savedThemes, savedIdx := snapshotThemeState()
	defer restoreThemeState(savedThemes, savedIdx)

	if err := LoadThemes(t.TempDir()); err != nil {
		t.Fatalf("LoadThemes error: %v", err)
	}
	if got := ActiveTheme().Name; got != defaultThemeName {
		t.Errorf("active theme = %q, want %q", got, defaultThemeName)
	}
	if colorAccent != ActiveTheme().Accent {
		t.Errorf("palette accent = %q, want %q", colorAccent, ActiveTheme().Accent)
	}
}

func TestBuiltinThemesAreValid(t *testing.T) {
	for _, theme := range builtinThemes() {
		if err := normalizeTheme(theme).validate(); err != nil {
			t.Errorf("%s: %v", theme.Name, err)
		}
	}
}

func TestCycleThemeWraps(t *testing.T) {
	savedThemes, savedIdx := snapshotThemeState()
	defer restoreThemeState(savedThemes, savedIdx)

	start := ActiveTheme().Name
	for range AvailableThemes() {
		CycleTheme()
	}
	if got := ActiveTheme().Name; got != start {
		t.Errorf("after a full cycle theme = %q, want %q", got, start)
	}
}

func TestLoadThemesFromConfigDir(t *testing.T) {
	savedThemes, savedIdx := snapshotThemeState()
	defer restoreThemeState(savedThemes, savedIdx)

	cfgDir := t.TempDir()
	writeThemeFile(t, filepath.Join(cfgDir, "themes"), "custom-gray.json", externalThemeJSON("Custom Gray", "#FAFAFA"))

	if err := LoadThemes(cfgDir); err != nil {
		t.Fatalf("LoadThemes error: %v", err)
	}
	if !SetThemeByName("custom gray") {
		t.Fatal("SetThemeByName(custom gray) returned false")
	}
	active := ActiveTheme()
	if active.Name != "Custom Gray" {
		t.Fatalf("active theme = %q, want Custom Gray", active.Name)
	}
	if active.Accent != lipgloss.Color("#FAFAFA") {
		t.Fatalf("accent = %q, want #FAFAFA", active.Accent)
	}
	if active.Icon == "" {
		t.Error("missing icon should get a default")
	}
}

func TestLoadThemesCanOverrideBuiltinByName(t *testing.T) {
	savedThemes, savedIdx := snapshotThemeState()
	defer restoreThemeState(savedThemes, savedIdx)

	cfgDir := t.TempDir()
	writeThemeFile(t, filepath.Join(cfgDir, "themes"), "nord.json", externalThemeJSON("Nord", "#FFFFFF"))

	before := len(AvailableThemes())
	if err := LoadThemes(cfgDir); err != nil {
		t.Fatalf("LoadThemes error: %v", err)
	}
	if got := len(AvailableThemes()); got != before {
		t.Errorf("themes = %d, want %d after override", got, before)
	}
	if !SetThemeByName("Nord") {
		t.Fatal("SetThemeByName(Nord) returned false")
	}
	if got := ActiveTheme().Accent; got != lipgloss.Color("#FFFFFF") {
		t.Fatalf("accent = %q, want #FFFFFF", got)
	}
}

func TestLoadThemesFromEnvPath(t *testing.T) {
	savedThemes, savedIdx := snapshotThemeState()
	defer restoreThemeState(savedThemes, savedIdx)

	extraDir := t.TempDir()
	writeThemeFile(t, extraDir, "env-theme.json", externalThemeJSON("Env Gray", "#F0F0F0"))
	t.Setenv(themeDirEnvVar, extraDir)

	if err := LoadThemes(t.TempDir()); err != nil {
		t.Fatalf("LoadThemes error: %v", err)
	}
	if !SetThemeByName("Env Gray") {
		t.Fatal("SetThemeByName(Env Gray) returned false")
	}
}

func TestLoadThemesReportsInvalidThemeFiles(t *testing.T) {
	savedThemes, savedIdx := snapshotThemeState()
	defer restoreThemeState(savedThemes, savedIdx)

	cfgDir := t.TempDir()
	writeThemeFile(t, filepath.Join(cfgDir, "themes"), "broken.json", `{"name":"Broken"}`)

	err := LoadThemes(cfgDir)
	if err == nil {
		t.Fatal("expected error for invalid theme file")
	}
	if !strings.Contains(err.Error(), "missing required color fields") {
		t.Fatalf("unexpected error: %v", err)
	}
	if SetThemeByName("Broken") {
		t.Error("invalid theme should not be selectable")
	}
	if !SetThemeByName("Gruvbox") {
		t.Fatal("expected built-in themes to remain available")
	}
}

func TestApplyTheme_StylesUseThemeColors(t *testing.T) {
	savedThemes, savedIdx := snapshotThemeState()
	defer restoreThemeState(savedThemes, savedIdx)

	if !SetThemeByName("Nord") {
		t.Fatal("Nord theme should exist")
	}
	nord := ActiveTheme()

	tests := []struct {
		name string
		got  lipgloss.TerminalColor
		want lipgloss.Color
	}{
		{"inactive tab background", tabInactiveStyle.GetBackground(), nord.Surface0},
		{"caption", captionStyle.GetForeground(), nord.Sapphire},
		{"refresh marker", refreshStyle.GetForeground(), nord.Yellow},
		{"header", headerStyle.GetForeground(), nord.Lavender},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

package loader

import (
	"testing"
)

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("STRATA_TAB_SIZE", "2")
	t.Setenv("STRATA_THEME", "light")
	t.Setenv("STRATA_LOG_LEVEL", "debug")
	t.Setenv("STRATA_LINE_WRAP", "false")

	config, err := NewEnvLoader(DefaultEnvPrefix).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"theme.name", "light"},
		{"editor.tabSize", int64(2)},
		{"editor.lineWrap", false},
	}
	for _, tt := range tests {
		if val, ok := GetByPath(config, tt.path); !ok || val != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, val, val, tt.want)
		}
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	t.Setenv("STRATA_VIEW_COMPOSE_WIDTH", "100")

	config, err := NewEnvLoader(DefaultEnvPrefix).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if val, ok := GetByPath(config, "view.composeWidth"); !ok || val != int64(100) {
		t.Errorf("view.composeWidth = %v, want 100", val)
	}
}

func TestEnvLoader_IgnoresOtherPrefixes(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string {
		return []string{"HOME=/root", "STRATAX=1", "STRATA_COLOR=16"}
	}
	config, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(config) != 1 {
		t.Errorf("config = %v, want only view", config)
	}
	if val, _ := GetByPath(config, "view.colorMode"); val != int64(16) {
		t.Errorf("view.colorMode = %v (%T)", val, val)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := NewEnvLoaderWithMapping("APP_", nil)
	l.AddMapping("APP_WIDTH", "view.composeWidth")
	l.environ = func() []string { return []string{"APP_WIDTH=72"} }

	config, _ := l.Load()
	if val, _ := GetByPath(config, "view.composeWidth"); val != int64(72) {
		t.Errorf("view.composeWidth = %v", val)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader(DefaultEnvPrefix)

	tests := []struct {
		env  string
		want string
	}{
		{"STRATA_EDITOR_TAB_SIZE", "editor.tabSize"},
		{"STRATA_VIEW_SCROLLBAR", "view.scrollbar"},
		{"STRATA_LOGGING_LEVEL", "logging.level"},
		{"STRATA_DEBUG", "debug"},
	}
	for _, tt := range tests {
		if got := loader.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"No", false},
		{"42", int64(42)},
		{"0", int64(0)},
		{"1.5", 1.5},
		{"on", "on"},
		{"truecolor", "truecolor"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}
}

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/strata/internal/config/loader"
	"github.com/dshills/strata/internal/logging"
)

// Default values for settings.
const (
	DefaultTabSize            = 8
	DefaultMaxSafeLineWidth   = 10000
	DefaultLargeFileThreshold = 1 << 20
	DefaultSeparator          = "│"
	DefaultColorMode          = "truecolor"
	DefaultScrollMargin       = 5
)

// Allowed values for enumerated settings.
var (
	LineNumberModes = []string{"on", "off", "relative"}
	ColorModes      = []string{"truecolor", "256", "16", "none"}
)

// EditorConfig holds the text layout settings.
type EditorConfig struct {
	TabSize int

	LineWrap bool

	// LineNumbers is "on", "off" or "relative".
	LineNumbers string

	// ShowWhitespace draws tab arrows.
	ShowWhitespace bool

	// MaxSafeLineWidth is the number of characters after which a source
	// line is forcibly broken.
	MaxSafeLineWidth int

	// LargeFileThreshold is the byte length above which the scrollbar
	// switches to its byte-ratio estimate.
	LargeFileThreshold int

	RevealCodes bool
}

// ViewConfig holds pane presentation settings.
type ViewConfig struct {
	Scrollbar bool

	// ComposeWidth centers the content in a column of this width; 0 fills
	// the pane.
	ComposeWidth int

	Separator string

	// ColorMode is one of ColorModes.
	ColorMode string

	ScrollMargin int

	// DiffHeaders adds hunk header rows to aligned diffs.
	DiffHeaders bool
}

// ThemeConfig selects the color theme.
type ThemeConfig struct {
	Name string

	// Path is a JSON theme file; it wins over Name when set.
	Path string
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string
}

// Defaults returns the built-in settings as a nested map.
func Defaults() map[string]any {
	return map[string]any{
		"editor": map[string]any{
			"tabSize":            int64(DefaultTabSize),
			"lineWrap":           true,
			"lineNumbers":        "on",
			"showWhitespace":     false,
			"maxSafeLineWidth":   int64(DefaultMaxSafeLineWidth),
			"largeFileThreshold": int64(DefaultLargeFileThreshold),
			"revealCodes":        false,
		},
		"view": map[string]any{
			"scrollbar":    true,
			"composeWidth": int64(0),
			"separator":    DefaultSeparator,
			"colorMode":    DefaultColorMode,
			"scrollMargin": int64(DefaultScrollMargin),
			"diffHeaders":  true,
		},
		"theme": map[string]any{
			"name": "default",
			"path": "",
		},
		"logging": map[string]any{
			"level": "info",
		},
	}
}

// Config provides access to the merged strata configuration.
type Config struct {
	mu sync.RWMutex

	data map[string]any

	file         string
	fileRequired bool
	envPrefix    string
	fsys         loader.FileSystem
	overrides    map[string]any
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile reads settings from path when it exists.
func WithFile(path string) Option {
	return func(c *Config) {
		c.file = path
		c.fileRequired = false
	}
}

// WithRequiredFile reads settings from path and fails when it is missing.
func WithRequiredFile(path string) Option {
	return func(c *Config) {
		c.file = path
		c.fileRequired = true
	}
}

// WithEnvPrefix changes the environment variable prefix; an empty prefix
// disables the environment source.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithFileSystem replaces the file system used to read the config file.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fsys = fsys
	}
}

// New creates a Config holding the defaults. Call Load to read the other
// sources.
func New(opts ...Option) *Config {
	c := &Config{
		data:      Defaults(),
		envPrefix: loader.DefaultEnvPrefix,
		fsys:      loader.DefaultFS(),
		overrides: make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultFile returns the user config file path, preferring an existing
// YAML file over the TOML default.
func DefaultFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	base := filepath.Join(dir, "strata")
	for _, name := range []string{"strata.yaml", "strata.yml"} {
		if _, err := os.Stat(filepath.Join(base, name)); err == nil {
			return filepath.Join(base, name)
		}
	}
	return filepath.Join(base, "strata.toml")
}

// Load rebuilds the configuration from defaults, the config file, the
// environment and the overrides, then validates it. On error the previous
// configuration is kept.
func (c *Config) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	merged := Defaults()
	sources := []string{"defaults"}

	if c.file != "" {
		fileData, err := c.loadFile()
		if err != nil {
			return err
		}
		if fileData != nil {
			merged = loader.DeepMerge(merged, fileData)
			sources = append(sources, c.file)
		}
	}

	if c.envPrefix != "" {
		envData, err := loader.NewEnvLoader(c.envPrefix).Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		if len(envData) > 0 {
			merged = loader.DeepMerge(merged, envData)
			sources = append(sources, "env")
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for path, v := range c.overrides {
		loader.SetByPath(merged, path, v)
	}
	if err := validate(merged); err != nil {
		return err
	}
	c.data = merged

	logging.Get().WithComponent("config").Debug("configuration loaded from %v", sources)
	return nil
}

// Reload re-reads every source. It is what a file watcher calls.
func (c *Config) Reload(ctx context.Context) error {
	return c.Load(ctx)
}

func (c *Config) loadFile() (map[string]any, error) {
	l, err := loader.ForPath(c.fsys, c.file)
	if err != nil {
		return nil, err
	}
	if c.fileRequired {
		if _, err := c.fsys.ReadFile(c.file); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, c.file)
		}
	}
	data, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", c.file, err)
	}
	return data, nil
}

// File returns the config file path, if any.
func (c *Config) File() string {
	return c.file
}

// Set overrides a setting above every other source, as a command line
// flag does. The override survives reloads.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := loader.Clone(c.data)
	loader.SetByPath(next, path, value)
	if err := validate(next); err != nil {
		return err
	}
	c.overrides[path] = value
	c.data = next
	return nil
}

// Get returns the raw value at a dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.GetByPath(c.data, path)
}

// GetString returns a string value at the given path. Numbers and bools
// are formatted, since environment values arrive typed.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	return asString(path, v)
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	return asInt(path, v)
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	return asBool(path, v)
}

// Editor returns a snapshot of the editor settings.
func (c *Config) Editor() EditorConfig {
	return EditorConfig{
		TabSize:            c.intOr("editor.tabSize", DefaultTabSize),
		LineWrap:           c.boolOr("editor.lineWrap", true),
		LineNumbers:        c.stringOr("editor.lineNumbers", "on"),
		ShowWhitespace:     c.boolOr("editor.showWhitespace", false),
		MaxSafeLineWidth:   c.intOr("editor.maxSafeLineWidth", DefaultMaxSafeLineWidth),
		LargeFileThreshold: c.intOr("editor.largeFileThreshold", DefaultLargeFileThreshold),
		RevealCodes:        c.boolOr("editor.revealCodes", false),
	}
}

// View returns a snapshot of the view settings.
func (c *Config) View() ViewConfig {
	return ViewConfig{
		Scrollbar:    c.boolOr("view.scrollbar", true),
		ComposeWidth: c.intOr("view.composeWidth", 0),
		Separator:    c.stringOr("view.separator", DefaultSeparator),
		ColorMode:    c.stringOr("view.colorMode", DefaultColorMode),
		ScrollMargin: c.intOr("view.scrollMargin", DefaultScrollMargin),
		DiffHeaders:  c.boolOr("view.diffHeaders", true),
	}
}

// Theme returns a snapshot of the theme settings.
func (c *Config) Theme() ThemeConfig {
	return ThemeConfig{
		Name: c.stringOr("theme.name", "default"),
		Path: c.stringOr("theme.path", ""),
	}
}

// Logging returns a snapshot of the logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{Level: c.stringOr("logging.level", "info")}
}

func (c *Config) intOr(path string, fallback int) int {
	v, err := c.GetInt(path)
	if err != nil {
		return fallback
	}
	return v
}

func (c *Config) boolOr(path string, fallback bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		return fallback
	}
	return v
}

func (c *Config) stringOr(path string, fallback string) string {
	v, err := c.GetString(path)
	if err != nil {
		return fallback
	}
	return v
}

func asString(path string, v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case int, int64, float64:
		return fmt.Sprint(val), nil
	case bool:
		if val {
			return "on", nil
		}
		return "off", nil
	default:
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
}

func asInt(path string, v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val == math.Trunc(val) {
			return int(val), nil
		}
	}
	return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
}

func asBool(path string, v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		switch val {
		case "on", "true":
			return true, nil
		case "off", "false":
			return false, nil
		}
	}
	return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
}

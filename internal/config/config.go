package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/janekbaraniewski/daytrend/internal/chart"
	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	envPrefix = "DAYTREND"

	defaultTheme           = "Catppuccin Mocha"
	defaultRefreshInterval = 30
	defaultChartWidth      = 600
	defaultChartHeight     = 160
	defaultPaddingTop      = 10
	defaultPaddingBottom   = 10
	defaultSaturation      = 60
)

type UIConfig struct {
	RefreshIntervalSeconds int `json:"refresh_interval_seconds" mapstructure:"refresh_interval_seconds"`
}

// ChartConfig is the pixel frame used for SVG and JSON exports.
type ChartConfig struct {
	Width         float64 `json:"width" mapstructure:"width"`
	Height        float64 `json:"height" mapstructure:"height"`
	PaddingTop    float64 `json:"padding_top" mapstructure:"padding_top"`
	PaddingBottom float64 `json:"padding_bottom" mapstructure:"padding_bottom"`
}

type MetricConfig struct {
	Name       string  `json:"name" mapstructure:"name"`
	Label      string  `json:"label" mapstructure:"label"`
	Hue        float64 `json:"hue" mapstructure:"hue"`
	Saturation float64 `json:"saturation" mapstructure:"saturation"`
}

type Config struct {
	Theme   string         `json:"theme" mapstructure:"theme"`
	Window  string         `json:"window" mapstructure:"window"`
	DBPath  string         `json:"db_path,omitempty" mapstructure:"db_path"`
	UI      UIConfig       `json:"ui" mapstructure:"ui"`
	Chart   ChartConfig    `json:"chart" mapstructure:"chart"`
	Metrics []MetricConfig `json:"metrics" mapstructure:"metrics"`
}

func DefaultConfig() Config {
	return Config{
		Theme:  defaultTheme,
		Window: string(core.TimeWindow30d),
		UI:     UIConfig{RefreshIntervalSeconds: defaultRefreshInterval},
		Chart: ChartConfig{
			Width:         defaultChartWidth,
			Height:        defaultChartHeight,
			PaddingTop:    defaultPaddingTop,
			PaddingBottom: defaultPaddingBottom,
		},
		Metrics: DefaultMetrics(),
	}
}

// DefaultMetrics is the built-in metric set: warm orange, blue, violet.
func DefaultMetrics() []MetricConfig {
	return []MetricConfig{
		{Name: string(core.MetricNutrition), Label: "Nutrition", Hue: 30, Saturation: defaultSaturation},
		{Name: string(core.MetricEnergy), Label: "Energy", Hue: 200, Saturation: defaultSaturation},
		{Name: string(core.MetricSatisfaction), Label: "Satisfaction", Hue: 280, Saturation: defaultSaturation},
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "daytrend")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "daytrend")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads path over the defaults, then applies DAYTREND_* environment
// overrides. A missing file is not an error.
func LoadFrom(path string) (Config, error) {
	return loadFrom(path, true)
}

// loadFile reads path over the defaults without environment overrides, so
// read-modify-write saves never persist a one-off DAYTREND_* value.
func loadFile(path string) (Config, error) {
	return loadFrom(path, false)
}

func loadFrom(path string, withEnv bool) (Config, error) {
	v := newViper(withEnv)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return DefaultConfig(), fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decoding config %s: %w", path, err)
	}
	return normalize(cfg), nil
}

func newViper(withEnv bool) *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	if withEnv {
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	def := DefaultConfig()
	v.SetDefault("theme", def.Theme)
	v.SetDefault("window", def.Window)
	v.SetDefault("db_path", "")
	v.SetDefault("ui.refresh_interval_seconds", def.UI.RefreshIntervalSeconds)
	v.SetDefault("chart.width", def.Chart.Width)
	v.SetDefault("chart.height", def.Chart.Height)
	v.SetDefault("chart.padding_top", def.Chart.PaddingTop)
	v.SetDefault("chart.padding_bottom", def.Chart.PaddingBottom)
	return v
}

func normalize(cfg Config) Config {
	def := DefaultConfig()

	if cfg.UI.RefreshIntervalSeconds <= 0 {
		cfg.UI.RefreshIntervalSeconds = def.UI.RefreshIntervalSeconds
	}
	if strings.TrimSpace(cfg.Theme) == "" {
		cfg.Theme = def.Theme
	}
	cfg.Window = string(core.ParseTimeWindow(strings.TrimSpace(cfg.Window)))
	cfg.DBPath = strings.TrimSpace(cfg.DBPath)

	if cfg.Chart.Width <= 0 {
		cfg.Chart.Width = def.Chart.Width
	}
	if cfg.Chart.Height <= 0 {
		cfg.Chart.Height = def.Chart.Height
	}
	if cfg.Chart.PaddingTop < 0 {
		cfg.Chart.PaddingTop = def.Chart.PaddingTop
	}
	if cfg.Chart.PaddingBottom < 0 {
		cfg.Chart.PaddingBottom = def.Chart.PaddingBottom
	}
	if cfg.Chart.PaddingTop+cfg.Chart.PaddingBottom >= cfg.Chart.Height {
		cfg.Chart.PaddingTop = 0
		cfg.Chart.PaddingBottom = 0
	}

	metrics := make([]MetricConfig, 0, len(cfg.Metrics))
	for _, m := range cfg.Metrics {
		m.Name = strings.ToLower(strings.TrimSpace(m.Name))
		if m.Name == "" {
			continue
		}
		if strings.TrimSpace(m.Label) == "" {
			m.Label = m.Name
		}
		if m.Saturation <= 0 {
			m.Saturation = defaultSaturation
		}
		metrics = append(metrics, m)
	}
	metrics = lo.UniqBy(metrics, func(m MetricConfig) string { return m.Name })
	if len(metrics) == 0 {
		metrics = def.Metrics
	}
	cfg.Metrics = metrics
	return cfg
}

// TimeWindow returns the configured default window.
func (c Config) TimeWindow() core.TimeWindow {
	return core.ParseTimeWindow(c.Window)
}

func (c Config) Frame() chart.Frame {
	return chart.Frame{
		Width:  c.Chart.Width,
		Height: c.Chart.Height,
		Padding: chart.Padding{
			Top:    c.Chart.PaddingTop,
			Bottom: c.Chart.PaddingBottom,
		},
	}
}

// MetricSpecs returns the configured metrics in display order.
func (c Config) MetricSpecs() []chart.MetricSpec {
	return lo.Map(c.Metrics, func(m MetricConfig, _ int) chart.MetricSpec {
		return chart.MetricSpec{
			Name:   core.MetricName(m.Name),
			Label:  m.Label,
			Family: chart.Family{Hue: m.Hue, Saturation: m.Saturation},
		}
	})
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveTheme persists a theme name into the config file (read-modify-write).
func SaveTheme(theme string) error {
	return SaveThemeTo(ConfigPath(), theme)
}

func SaveThemeTo(path string, theme string) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := loadFile(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.Theme = theme
	return SaveTo(path, cfg)
}

// SaveWindow persists the default time window (read-modify-write).
func SaveWindow(tw core.TimeWindow) error {
	return SaveWindowTo(ConfigPath(), tw)
}

func SaveWindowTo(path string, tw core.TimeWindow) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := loadFile(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.Window = string(tw)
	return SaveTo(path, cfg)
}

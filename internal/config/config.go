package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/studyloom-cli/internal/study"
)

// Global configuration structure.
type Global struct {
	MetadataPath string `mapstructure:"metadata_path" yaml:"metadata_path"`
	ResultsPath  string `mapstructure:"results_path" yaml:"results_path"`
	// Delimiter is a single character, "tab", or empty to sniff from the file.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`

	OutlierRegimens   []string `mapstructure:"outlier_regimens" yaml:"outlier_regimens"`
	RegressionRegimen string   `mapstructure:"regression_regimen" yaml:"regression_regimen"`
	TimelineMouse     string   `mapstructure:"timeline_mouse" yaml:"timeline_mouse"`
	IQRFactor         float64  `mapstructure:"iqr_factor" yaml:"iqr_factor"`
	UnmatchedPolicy   string   `mapstructure:"unmatched_policy" yaml:"unmatched_policy"`

	// Figures
	FiguresDir   string `mapstructure:"figures_dir" yaml:"figures_dir"`
	FigureFormat string `mapstructure:"figure_format" yaml:"figure_format"`
	FigureWidth  int    `mapstructure:"figure_width" yaml:"figure_width"`
	FigureHeight int    `mapstructure:"figure_height" yaml:"figure_height"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"metadata_path", "results_path", "delimiter", "sheet_name",
	"outlier_regimens", "regression_regimen", "timeline_mouse", "iqr_factor", "unmatched_policy",
	"figures_dir", "figure_format", "figure_width", "figure_height",
	"log_level", "log_format",
}

func dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".studyloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.studyloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		d, err := dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(d, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults; flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("STUDYLOOM")
	v.AutomaticEnv()

	v.SetDefault("metadata_path", filepath.Join("data", "Mouse_metadata.csv"))
	v.SetDefault("results_path", filepath.Join("data", "Study_results.csv"))
	v.SetDefault("delimiter", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("outlier_regimens", []string{"Capomulin", "Ramicane", "Infubinol", "Ceftamin"})
	v.SetDefault("regression_regimen", "Capomulin")
	v.SetDefault("timeline_mouse", "l509")
	v.SetDefault("iqr_factor", 1.5)
	v.SetDefault("unmatched_policy", "keep")
	v.SetDefault("figures_dir", "figures")
	v.SetDefault("figure_format", "png")
	v.SetDefault("figure_width", 800)
	v.SetDefault("figure_height", 600)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		d, err := dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(d)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// DelimiterRune returns the configured field separator, or 0 to auto-detect.
func (c *Global) DelimiterRune() (rune, error) {
	return ParseDelimiter(c.Delimiter)
}

// ParseDelimiter accepts a single character, "tab" or "\t". Empty means auto.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q (use a single character or \"tab\")", s)
	}
	return r[0], nil
}

// Set validates val and assigns it to key.
func (c *Global) Set(key, val string) error {
	switch key {
	case "metadata_path":
		c.MetadataPath = val
	case "results_path":
		c.ResultsPath = val
	case "delimiter":
		if _, err := ParseDelimiter(val); err != nil {
			return err
		}
		c.Delimiter = val
	case "sheet_name":
		c.SheetName = val
	case "outlier_regimens":
		var regs []string
		for _, p := range strings.Split(val, ",") {
			if p = strings.TrimSpace(p); p != "" {
				regs = append(regs, p)
			}
		}
		if len(regs) == 0 {
			return fmt.Errorf("outlier_regimens needs at least one regimen")
		}
		c.OutlierRegimens = regs
	case "regression_regimen":
		c.RegressionRegimen = val
	case "timeline_mouse":
		c.TimelineMouse = val
	case "iqr_factor":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid positive float for iqr_factor: %v", val)
		}
		c.IQRFactor = f
	case "unmatched_policy":
		p, err := study.ParseUnmatchedPolicy(val)
		if err != nil {
			return err
		}
		c.UnmatchedPolicy = p.String()
	case "figures_dir":
		c.FiguresDir = val
	case "figure_format":
		switch strings.ToLower(val) {
		case "png", "svg":
			c.FigureFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid figure_format: %s (use png or svg)", val)
		}
	case "figure_width", "figure_height":
		i, err := strconv.Atoi(val)
		if err != nil || i < 100 {
			return fmt.Errorf("invalid int for %s: %v (minimum 100)", key, val)
		}
		if key == "figure_width" {
			c.FigureWidth = i
		} else {
			c.FigureHeight = i
		}
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	case "log_format":
		switch strings.ToLower(val) {
		case "text", "json":
			c.LogFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_format: %s (use text or json)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Get returns the display value of key.
func (c *Global) Get(key string) string {
	switch key {
	case "metadata_path":
		return c.MetadataPath
	case "results_path":
		return c.ResultsPath
	case "delimiter":
		return c.Delimiter
	case "sheet_name":
		return c.SheetName
	case "outlier_regimens":
		return strings.Join(c.OutlierRegimens, ",")
	case "regression_regimen":
		return c.RegressionRegimen
	case "timeline_mouse":
		return c.TimelineMouse
	case "iqr_factor":
		return strconv.FormatFloat(c.IQRFactor, 'g', -1, 64)
	case "unmatched_policy":
		return c.UnmatchedPolicy
	case "figures_dir":
		return c.FiguresDir
	case "figure_format":
		return c.FigureFormat
	case "figure_width":
		return strconv.Itoa(c.FigureWidth)
	case "figure_height":
		return strconv.Itoa(c.FigureHeight)
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	}
	return ""
}

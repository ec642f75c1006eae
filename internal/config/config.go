// Package config loads search and display settings from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"reverse-image-search/internal/catalog"
	"reverse-image-search/internal/image"
	"reverse-image-search/internal/search"
	"reverse-image-search/pkg/colorutil"
)

// Config is the full application configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Catalog CatalogConfig `yaml:"catalog"`
	Display DisplayConfig `yaml:"display"`
}

// SearchConfig controls the similarity search.
type SearchConfig struct {
	CompareWithColor   bool    `yaml:"compare_with_color"`
	EarlyExitThreshold float64 `yaml:"early_exit_threshold"`
	TargetWidth        int     `yaml:"target_width"`
}

// CatalogConfig controls which files in a folder are candidates.
type CatalogConfig struct {
	Extensions []string `yaml:"extensions"`
}

// DisplayConfig sizes the preview frames in the GUI.
type DisplayConfig struct {
	FrameWidth  int    `yaml:"frame_width"`
	FrameHeight int    `yaml:"frame_height"`
	Background  string `yaml:"background"` // #RRGGBB
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			CompareWithColor:   true,
			EarlyExitThreshold: search.DefaultEarlyExitThreshold,
			TargetWidth:        search.DefaultTargetWidth,
		},
		Catalog: CatalogConfig{
			Extensions: append([]string(nil), catalog.DefaultExtensions...),
		},
		Display: DisplayConfig{
			FrameWidth:  300,
			FrameHeight: 220,
			Background:  colorutil.Hex(colorutil.FrameBackground),
		},
	}
}

// Load reads path over the defaults, then applies IMGSEARCH_* environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Search.CompareWithColor = getEnvBool("IMGSEARCH_COMPARE_WITH_COLOR", c.Search.CompareWithColor)
	c.Search.EarlyExitThreshold = getEnvFloat("IMGSEARCH_EARLY_EXIT_THRESHOLD", c.Search.EarlyExitThreshold)
	c.Search.TargetWidth = getEnvInt("IMGSEARCH_TARGET_WIDTH", c.Search.TargetWidth)
	c.Catalog.Extensions = getEnvList("IMGSEARCH_EXTENSIONS", c.Catalog.Extensions)
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if c.Search.TargetWidth <= 0 {
		return fmt.Errorf("search.target_width must be positive, got %d", c.Search.TargetWidth)
	}
	if c.Search.EarlyExitThreshold < 0 {
		return fmt.Errorf("search.early_exit_threshold must not be negative, got %v", c.Search.EarlyExitThreshold)
	}
	if len(c.Catalog.Extensions) == 0 {
		return fmt.Errorf("catalog.extensions must not be empty")
	}
	for _, ext := range c.Catalog.Extensions {
		if !image.IsSupportedFormat("x" + normalizeExt(ext)) {
			return fmt.Errorf("catalog.extensions: unsupported format %q", ext)
		}
	}
	if c.Display.FrameWidth <= 0 || c.Display.FrameHeight <= 0 {
		return fmt.Errorf("display frame must be positive, got %dx%d", c.Display.FrameWidth, c.Display.FrameHeight)
	}
	if _, err := colorutil.ParseHex(c.Display.Background); err != nil {
		return fmt.Errorf("display.background: %w", err)
	}
	return nil
}

// SearchOptions converts the search section to search.Options.
func (c *Config) SearchOptions() search.Options {
	opts := search.DefaultOptions()
	opts.UseColor = c.Search.CompareWithColor
	opts.EarlyExitThreshold = c.Search.EarlyExitThreshold
	opts.TargetWidth = c.Search.TargetWidth
	return opts
}

// FrameRatio returns the preview frame's width/height.
func (c *Config) FrameRatio() float64 {
	return float64(c.Display.FrameWidth) / float64(c.Display.FrameHeight)
}

// BackgroundColor returns the parsed frame background.
func (c *Config) BackgroundColor() color.RGBA {
	bg, err := colorutil.ParseHex(c.Display.Background)
	if err != nil {
		return colorutil.FrameBackground
	}
	return bg
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return def
}

func getEnvList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				result = append(result, t)
			}
		}
		return result
	}
	return def
}

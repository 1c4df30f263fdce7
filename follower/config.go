// Package follower runs the line-following loop: a frame source feeding a
// bounded pipeline that runs the mask/edge/segment stages on each frame and
// turns the detected segments into steering commands. Tuning lives in a
// small JSON config with layered overrides and optional hot reload.
package follower

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/line-follower-sim/line-follower-sim/vision"
)

// Config is the follower's tuning state: the intensity band the line mask
// selects and the Hough extraction parameters.
type Config struct {
	MinVal         int     `koanf:"min_val" json:"min_val"`
	MaxVal         int     `koanf:"max_val" json:"max_val"`
	HoughThreshold int     `koanf:"hough_threshold" json:"hough_threshold"`
	MinLineLength  int     `koanf:"min_line_length" json:"min_line_length"`
	MaxLineGap     int     `koanf:"max_line_gap" json:"max_line_gap"`
	Rho            float64 `koanf:"rho" json:"rho"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MinVal:         0,
		MaxVal:         255,
		HoughThreshold: 50,
		MinLineLength:  10,
		MaxLineGap:     5,
		Rho:            1.0,
	}
}

// Validate checks the tuning ranges.
func (c Config) Validate() error {
	if c.MinVal < 0 || c.MinVal > 255 {
		return fmt.Errorf("min_val must be in [0, 255], got %d", c.MinVal)
	}
	if c.MaxVal < 0 || c.MaxVal > 255 {
		return fmt.Errorf("max_val must be in [0, 255], got %d", c.MaxVal)
	}
	if c.MinVal > c.MaxVal {
		return fmt.Errorf("min_val %d must not exceed max_val %d", c.MinVal, c.MaxVal)
	}
	if c.HoughThreshold < 1 {
		return fmt.Errorf("hough_threshold must be at least 1, got %d", c.HoughThreshold)
	}
	if c.MinLineLength < 1 {
		return fmt.Errorf("min_line_length must be at least 1, got %d", c.MinLineLength)
	}
	if c.MaxLineGap < 0 {
		return fmt.Errorf("max_line_gap must be non-negative, got %d", c.MaxLineGap)
	}
	if math.IsNaN(c.Rho) || c.Rho < 0.01 {
		return fmt.Errorf("rho must be at least 0.01, got %f", c.Rho)
	}
	return nil
}

// HoughParams translates the tuning into vision parameters.
func (c Config) HoughParams() vision.HoughParams {
	return vision.HoughParams{
		Rho:           c.Rho,
		Theta:         math.Pi / 180,
		Threshold:     c.HoughThreshold,
		MinLineLength: float64(c.MinLineLength),
		MaxLineGap:    float64(c.MaxLineGap),
	}
}

// MaskBounds returns the intensity band as mask arguments.
func (c Config) MaskBounds() (lo, hi uint8) {
	return uint8(c.MinVal), uint8(c.MaxVal)
}

// EnvPrefix is the prefix for environment overrides, e.g. FOLLOWER_MIN_VAL.
const EnvPrefix = "FOLLOWER_"

func defaultsMap() map[string]interface{} {
	d := DefaultConfig()
	return map[string]interface{}{
		"min_val":         d.MinVal,
		"max_val":         d.MaxVal,
		"hough_threshold": d.HoughThreshold,
		"min_line_length": d.MinLineLength,
		"max_line_gap":    d.MaxLineGap,
		"rho":             d.Rho,
	}
}

// Load builds the tuning config by layering, lowest to highest precedence:
// defaults, the JSON file at path, FOLLOWER_* environment variables, and
// explicitly set CLI flags. A missing file is fine; a malformed or invalid
// file is dropped with a warning and the defaults stand in for it. Invalid
// values arriving from env or flags are an error, not a revert.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := mergeFileLayer(k, path); err != nil {
			logrus.Warnf("%v; reverting to defaults", err)
			k = koanf.New(".")
			if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
				return Config{}, fmt.Errorf("loading defaults: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Config{}, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding tuning config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("tuning config: %w", err)
	}
	return cfg, nil
}

// mergeFileLayer loads the JSON file into k and proves the merged result
// still validates. Any failure leaves the caller to rebuild k from defaults.
func mergeFileLayer(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logrus.Debugf("tuning config %s not found, using defaults", path)
		return nil
	}
	if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
		return fmt.Errorf("reading tuning config %s: %w", path, err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return fmt.Errorf("decoding tuning config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("tuning config %s: %w", path, err)
	}
	return nil
}

// LoadFile reads only defaults plus the JSON file, no env or flag layers.
// Watch uses it so a reload reflects exactly what is on disk.
func LoadFile(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("loading defaults: %w", err)
	}
	if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
		return Config{}, fmt.Errorf("reading tuning config %s: %w", path, err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding tuning config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("tuning config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as indented JSON, atomically: a temp file in the
// same directory replaces path, so a concurrent watcher never sees a torn
// write.
func (c Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to save: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tuning config: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tuning-*.json")
	if err != nil {
		return fmt.Errorf("writing tuning config: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing tuning config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing tuning config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing tuning config: %w", err)
	}
	return nil
}

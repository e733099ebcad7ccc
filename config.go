package surface

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the file form of the engine options.
//
//	double_hit_timeout = "400ms"
//	verbose = true
//
//	[keys]
//	next = "Tab"
//	activate = "Enter"
type Config struct {
	DoubleHitTimeout Duration `toml:"double_hit_timeout"`
	Verbose          bool     `toml:"verbose"`
	Keys             struct {
		Next     string `toml:"next"`
		Activate string `toml:"activate"`
	} `toml:"keys"`
}

// Duration is a time.Duration that decodes from strings like "500ms".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// DefaultConfig returns the configuration matching the engine defaults.
func DefaultConfig() Config {
	var c Config
	c.DoubleHitTimeout = Duration(DefaultDoubleHitTimeout)
	c.Keys.Next = KeyName(KeyTab)
	c.Keys.Activate = KeyName(KeyEnter)
	return c
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return c, nil
}

// Options converts the configuration into engine options. It also applies
// the Verbose setting to the package log level.
func (c Config) Options() ([]Option, error) {
	keys := DefaultKeyMap()
	if c.Keys.Next != "" {
		k, err := ParseKey(c.Keys.Next)
		if err != nil {
			return nil, fmt.Errorf("keys.next: %w", err)
		}
		keys.Next = k
	}
	if c.Keys.Activate != "" {
		k, err := ParseKey(c.Keys.Activate)
		if err != nil {
			return nil, fmt.Errorf("keys.activate: %w", err)
		}
		keys.Activate = k
	}
	SetVerbose(c.Verbose)
	return []Option{
		WithDoubleHitTimeout(time.Duration(c.DoubleHitTimeout)),
		WithKeyMap(keys),
	}, nil
}

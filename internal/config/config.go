// Package config loads server settings from a YAML file, filling in
// sensible defaults for anything the file leaves out.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s"
// or "2h", which yaml.v3 will not do for the stdlib type.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: bad duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	PokeAPI PokeAPIConfig `yaml:"pokeapi"`
	Cache   CacheConfig   `yaml:"cache"`
	Battle  BattleConfig  `yaml:"battle"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`

	// AdminKeyHash is a bcrypt hash of the key that unlocks the admin
	// endpoints. Empty disables them entirely.
	AdminKeyHash string `yaml:"admin_key_hash"`

	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

type PokeAPIConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Path string   `yaml:"path"`
	TTL  Duration `yaml:"ttl"`
}

type BattleConfig struct {
	DefaultLevel uint   `yaml:"default_level"`
	MovePolicy   string `yaml:"move_policy"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: Duration(10 * time.Second),
		},
		PokeAPI: PokeAPIConfig{
			BaseURL: "https://pokeapi.co/api/v2",
			Timeout: Duration(15 * time.Second),
		},
		Cache: CacheConfig{
			Path: "pokebattle.db",
			TTL:  Duration(time.Hour),
		},
		Battle: BattleConfig{
			DefaultLevel: 50,
			MovePolicy:   "max-damage",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: false,
		},
	}
}

// Load reads the config at path over the defaults. A missing file is not an
// error; the defaults run as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr is empty")
	}
	if c.Battle.DefaultLevel < 1 || c.Battle.DefaultLevel > 100 {
		return fmt.Errorf("config: battle.default_level %d outside [1, 100]", c.Battle.DefaultLevel)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("config: cache.ttl must be positive")
	}
	if c.PokeAPI.Timeout <= 0 {
		return fmt.Errorf("config: pokeapi.timeout must be positive")
	}

	return nil
}

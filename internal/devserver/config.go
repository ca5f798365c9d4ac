package devserver

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vcrobe/clickcounter/config"
)

// Config controls the development server.
type Config struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`
	// Dir holds main.wasm and wasm_exec.js.
	Dir string `yaml:"dir"`
	// Counter is handed to the page as window.counterConfig.
	Counter config.Config `yaml:"counter"`
}

// DefaultConfig serves ./dist on localhost:8080.
func DefaultConfig() Config {
	return Config{
		Addr:    "localhost:8080",
		Dir:     "dist",
		Counter: config.Default(),
	}
}

// LoadConfig overlays the YAML file at path onto DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the server settings and the embedded counter config.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is empty")
	}
	if c.Dir == "" {
		return errors.New("dir is empty")
	}
	return c.Counter.Validate()
}

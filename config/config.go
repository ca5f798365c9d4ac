// Package config holds the counter's page bindings.
package config

import (
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Default element identifiers expected in the host page.
const (
	DefaultDisplayID = "counter"
	DefaultTriggerID = "increment-btn"
)

// ErrInvalid is returned by Validate for unusable configurations.
var ErrInvalid = errors.New("config: invalid")

// Config selects the elements the counter binds to.
type Config struct {
	// DisplayID is the id of the element whose text shows the value.
	DisplayID string `json:"displayId" yaml:"displayId"`
	// TriggerID is the id of the control that increments the value.
	TriggerID string `json:"triggerId" yaml:"triggerId"`
	// Mount, when set, is the id of an element the counter renders its own
	// markup into before binding.
	Mount string `json:"mount,omitempty" yaml:"mount,omitempty"`
	// Debug enables debug logging.
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty"`
	// AlertOnError shows initialization failures with alert().
	AlertOnError bool `json:"alertOnError,omitempty" yaml:"alertOnError,omitempty"`
}

// Default returns the configuration matching the stock page markup.
func Default() Config {
	return Config{
		DisplayID: DefaultDisplayID,
		TriggerID: DefaultTriggerID,
	}
}

// Validate reports whether both ids are set and distinct.
func (c Config) Validate() error {
	switch {
	case c.DisplayID == "":
		return errors.Wrap(ErrInvalid, "displayId is empty")
	case c.TriggerID == "":
		return errors.Wrap(ErrInvalid, "triggerId is empty")
	case c.DisplayID == c.TriggerID:
		return errors.Wrapf(ErrInvalid, "displayId and triggerId are both %q", c.DisplayID)
	case c.Mount != "" && (c.Mount == c.DisplayID || c.Mount == c.TriggerID):
		return errors.Wrapf(ErrInvalid, "mount %q collides with an element id", c.Mount)
	}
	return nil
}

// FromJSON overlays the fields present in data onto Default and validates
// the result. Empty input yields Default.
func FromJSON(data []byte) (Config, error) {
	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: decode json")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// JSON encodes the configuration for injection into a page.
func (c Config) JSON() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "config: encode json")
	}
	return data, nil
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and cross-field rules. Tag failures are
// reported as "<Field>: failed '<tag>' validation" joined by "; ".
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuration is nil")
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed '%s' validation", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	seen := make(map[string]struct{}, len(cfg.Disks))
	for _, d := range cfg.Disks {
		if _, dup := seen[d.Name]; dup {
			return fmt.Errorf("duplicate disk name %q", d.Name)
		}
		seen[d.Name] = struct{}{}
	}

	if cfg.Metrics.Enabled && cfg.API.IsEnabled() && cfg.Metrics.Port == cfg.API.Port {
		return fmt.Errorf("metrics port %d conflicts with API port", cfg.Metrics.Port)
	}

	return nil
}

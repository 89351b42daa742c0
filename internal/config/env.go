package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override top-level
// scalar fields, e.g. TRAINCFG_EPOCHS or TRAINCFG_SAVE_PATH.
const EnvPrefix = "TRAINCFG_"

// applyEnvOverrides overlays environment variables onto the top-level scalar
// fields. Section contents are file-only.
func (c *TrainingConfig) applyEnvOverrides() error {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	if v := k.String("name"); v != "" {
		c.Name = v
	}
	if v := k.String("save_path"); v != "" {
		c.SavePath = v
	}
	if v := k.String("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &ValidationError{Field: "seed", Reason: fmt.Sprintf("environment override must be an integer, got %q", v)}
		}
		c.Seed = n
	}
	if v := k.String("epochs"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Field: "epochs", Reason: fmt.Sprintf("environment override must be an integer, got %q", v)}
		}
		c.Epochs = n
	}
	if v := k.String("eval_freq"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Field: "eval_freq", Reason: fmt.Sprintf("environment override must be an integer, got %q", v)}
		}
		c.EvalFreq = n
	}

	return nil
}

package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads, parses, and validates the configuration file at path.
// Environment overrides (see EnvPrefix) are applied before validation.
func Load(path string) (*TrainingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadReader parses and validates a configuration document from a stream.
func LoadReader(r io.Reader) (*TrainingConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config stream: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates a configuration document.
func Parse(data []byte) (*TrainingConfig, error) {
	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parse decodes the document and applies defaults, without validating.
func parse(data []byte) (*TrainingConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(doc.Content) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("empty document")}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Err: fmt.Errorf("top level must be a mapping")}
	}

	if err := checkRequired(root); err != nil {
		return nil, err
	}

	var cfg TrainingConfig
	if err := root.Decode(&cfg); err != nil {
		return nil, &ParseError{Err: err}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *TrainingConfig) applyDefaults() {
	if c.EvalFreq == 0 {
		c.EvalFreq = 1
	}
	if c.SavePath == "" {
		c.SavePath = "checkpoints"
	}
}

// checkRequired verifies the presence of required keys on the raw document
// tree, so a missing field is reported by its dotted path rather than as a
// zero-value validation failure.
func checkRequired(root *yaml.Node) error {
	if err := requireKeys(root, "", "name", "epochs", "Dataset", "Model", "Optimizer", "LRScheduler"); err != nil {
		return err
	}

	if ds := childNode(root, "Dataset"); ds != nil && ds.Kind == yaml.MappingNode {
		if err := requireKeys(ds, "Dataset", "type", "Train"); err != nil {
			return err
		}
		for _, name := range []string{"Train", "Val", "Test"} {
			if sn := childNode(ds, name); sn != nil && sn.Kind == yaml.MappingNode {
				if err := requireKeys(sn, "Dataset."+name, "batch_size"); err != nil {
					return err
				}
			}
		}
	}

	if mn := childNode(root, "Model"); mn != nil && mn.Kind == yaml.MappingNode {
		if err := requireKeys(mn, "Model", "model"); err != nil {
			return err
		}
	}
	if on := childNode(root, "Optimizer"); on != nil && on.Kind == yaml.MappingNode {
		if err := requireKeys(on, "Optimizer", "type"); err != nil {
			return err
		}
	}
	if sn := childNode(root, "LRScheduler"); sn != nil && sn.Kind == yaml.MappingNode {
		if err := requireKeys(sn, "LRScheduler", "type"); err != nil {
			return err
		}
	}

	return nil
}

// childNode returns the value node for key in a mapping node, or nil.
func childNode(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func requireKeys(m *yaml.Node, path string, keys ...string) error {
	for _, key := range keys {
		if childNode(m, key) == nil {
			field := key
			if path != "" {
				field = path + "." + key
			}
			return &MissingFieldError{Field: field}
		}
	}
	return nil
}

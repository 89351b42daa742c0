package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vkarpenko/traincfg/internal/split"
	"github.com/vkarpenko/traincfg/internal/transform"
)

// TrainingConfig is the top-level experiment configuration. It is constructed
// once at process start, validated, and never mutated afterwards.
type TrainingConfig struct {
	Name     string `yaml:"name"`
	Seed     int64  `yaml:"seed,omitempty"`
	SavePath string `yaml:"save_path,omitempty"`
	Epochs   int    `yaml:"epochs"`
	EvalFreq int    `yaml:"eval_freq,omitempty"`

	Dataset     *DatasetConfig     `yaml:"Dataset"`
	Model       *ModelConfig       `yaml:"Model"`
	Optimizer   *OptimizerConfig   `yaml:"Optimizer"`
	LRScheduler *LRSchedulerConfig `yaml:"LRScheduler"`
}

// DatasetConfig selects a dataset kind and describes how it is partitioned
// into splits.
type DatasetConfig struct {
	Type     string    `yaml:"type"`
	DataHome string    `yaml:"data_home,omitempty"`
	Split    SplitSpec `yaml:"Split,omitempty"`

	Train *SplitConfig `yaml:"Train"`
	Val   *SplitConfig `yaml:"Val,omitempty"`
	Test  *SplitConfig `yaml:"Test,omitempty"`
}

// SplitSpec describes how the dataset is partitioned: the fraction held out
// for testing and whether the partition order is randomized.
type SplitSpec struct {
	TestRatio float64 `yaml:"test_ratio"`
	Random    bool    `yaml:"random,omitempty"`
}

// SplitConfig holds the transform pipeline and batching parameters of one
// split (Train, Val, or Test).
type SplitConfig struct {
	Transforms transform.Pipeline `yaml:"transforms,omitempty"`
	BatchSize  int                `yaml:"batch_size"`
	Shuffle    bool               `yaml:"shuffle,omitempty"`
	NumWorkers int                `yaml:"num_workers,omitempty"`
}

// ModelConfig names the network architecture plus its kind-specific
// parameters. Known parameters decode into typed fields; the complete raw
// block remains available through ParamBlock for the harness.
type ModelConfig struct {
	Model      string `yaml:"model"`
	NumClasses int    `yaml:"num_classes,omitempty"`

	params map[string]any
}

// OptimizerConfig names the optimization algorithm plus its kind-specific
// parameters.
type OptimizerConfig struct {
	Type        string  `yaml:"type"`
	LR          float64 `yaml:"lr,omitempty"`
	Momentum    float64 `yaml:"momentum,omitempty"`
	WeightDecay float64 `yaml:"weight_decay,omitempty"`
	Nesterov    bool    `yaml:"nesterov,omitempty"`

	params map[string]any
}

// LRSchedulerConfig names the learning-rate schedule plus its kind-specific
// parameters. The warmup fields are surfaced as-is; how they compose with the
// main schedule is the harness's concern.
type LRSchedulerConfig struct {
	Type         string  `yaml:"type"`
	TMax         int     `yaml:"T_max,omitempty"`
	EtaMin       float64 `yaml:"eta_min,omitempty"`
	Warmup       int     `yaml:"warmup,omitempty"`
	WarmupEtaMin float64 `yaml:"warmup_eta_min,omitempty"`

	params map[string]any
}

// decodeKindSection decodes a kind section's typed fields and captures the
// raw parameter block with the kind-name key removed.
func decodeKindSection(value *yaml.Node, typed any, nameKey string) (map[string]any, error) {
	if err := value.Decode(typed); err != nil {
		return nil, err
	}
	raw := map[string]any{}
	if err := value.Decode(&raw); err != nil {
		return nil, err
	}
	delete(raw, nameKey)
	return raw, nil
}

func (m *ModelConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain ModelConfig
	var p plain
	raw, err := decodeKindSection(value, &p, "model")
	if err != nil {
		return err
	}
	*m = ModelConfig(p)
	m.params = raw
	return nil
}

func (o *OptimizerConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain OptimizerConfig
	var p plain
	raw, err := decodeKindSection(value, &p, "type")
	if err != nil {
		return err
	}
	*o = OptimizerConfig(p)
	o.params = raw
	return nil
}

func (s *LRSchedulerConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain LRSchedulerConfig
	var p plain
	raw, err := decodeKindSection(value, &p, "type")
	if err != nil {
		return err
	}
	*s = LRSchedulerConfig(p)
	s.params = raw
	return nil
}

// ParamBlock returns the model's raw parameter block as loaded from the
// document, without the kind-name key. For configs constructed in Go it is
// synthesized from the typed fields.
func (m *ModelConfig) ParamBlock() map[string]any {
	if m.params != nil {
		return m.params
	}
	return map[string]any{"num_classes": m.NumClasses}
}

// ParamBlock returns the optimizer's raw parameter block.
func (o *OptimizerConfig) ParamBlock() map[string]any {
	if o.params != nil {
		return o.params
	}
	return map[string]any{
		"lr":           o.LR,
		"momentum":     o.Momentum,
		"weight_decay": o.WeightDecay,
		"nesterov":     o.Nesterov,
	}
}

// ParamBlock returns the scheduler's raw parameter block.
func (s *LRSchedulerConfig) ParamBlock() map[string]any {
	if s.params != nil {
		return s.params
	}
	return map[string]any{
		"T_max":          s.TMax,
		"eta_min":        s.EtaMin,
		"warmup":         s.Warmup,
		"warmup_eta_min": s.WarmupEtaMin,
	}
}

// Partition returns the deterministic train/test index partition implied by
// the dataset's split spec for n samples, using the experiment seed.
func (d *DatasetConfig) Partition(n int, seed int64) (train, test []int) {
	return split.Partition(n, d.Split.TestRatio, d.Split.Random, seed)
}

// Splits returns the configured splits keyed by name, omitting absent ones.
func (d *DatasetConfig) Splits() map[string]*SplitConfig {
	out := make(map[string]*SplitConfig, 3)
	for name, s := range map[string]*SplitConfig{"Train": d.Train, "Val": d.Val, "Test": d.Test} {
		if s != nil {
			out[name] = s
		}
	}
	return out
}

// Validate performs comprehensive validation of the configuration.
func (c *TrainingConfig) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if c.Epochs < 1 {
		return &ValidationError{Field: "epochs", Reason: fmt.Sprintf("must be at least 1, got %d", c.Epochs)}
	}
	if c.EvalFreq < 1 {
		return &ValidationError{Field: "eval_freq", Reason: fmt.Sprintf("must be at least 1, got %d", c.EvalFreq)}
	}
	if c.EvalFreq > c.Epochs {
		return &ValidationError{Field: "eval_freq", Reason: fmt.Sprintf("must not exceed epochs (%d), got %d", c.Epochs, c.EvalFreq)}
	}

	if c.Dataset == nil {
		return &MissingFieldError{Field: "Dataset"}
	}
	if err := c.Dataset.Validate(); err != nil {
		return prefixField(err, "Dataset")
	}

	if c.Model == nil {
		return &MissingFieldError{Field: "Model"}
	}
	if err := c.Model.Validate(); err != nil {
		return prefixField(err, "Model")
	}

	if c.Optimizer == nil {
		return &MissingFieldError{Field: "Optimizer"}
	}
	if err := c.Optimizer.Validate(); err != nil {
		return prefixField(err, "Optimizer")
	}

	if c.LRScheduler == nil {
		return &MissingFieldError{Field: "LRScheduler"}
	}
	if err := c.LRScheduler.Validate(); err != nil {
		return prefixField(err, "LRScheduler")
	}

	return nil
}

// Validate validates the dataset section and its splits.
func (d *DatasetConfig) Validate() error {
	if d.Type == "" {
		return &ValidationError{Field: "type", Reason: "cannot be empty"}
	}
	if d.Split.TestRatio < 0 || d.Split.TestRatio > 1 {
		return &ValidationError{Field: "Split.test_ratio", Reason: fmt.Sprintf("must be between 0 and 1, got %v", d.Split.TestRatio)}
	}

	if d.Train == nil {
		return &MissingFieldError{Field: "Train"}
	}
	for _, sec := range []struct {
		name string
		cfg  *SplitConfig
	}{{"Train", d.Train}, {"Val", d.Val}, {"Test", d.Test}} {
		if sec.cfg == nil {
			continue
		}
		if err := sec.cfg.Validate(); err != nil {
			return prefixField(err, sec.name)
		}
	}

	return nil
}

// Validate validates one split's batching parameters and transforms.
func (s *SplitConfig) Validate() error {
	if s.BatchSize < 1 {
		return &ValidationError{Field: "batch_size", Reason: fmt.Sprintf("must be at least 1, got %d", s.BatchSize)}
	}
	if s.NumWorkers < 0 {
		return &ValidationError{Field: "num_workers", Reason: fmt.Sprintf("cannot be negative, got %d", s.NumWorkers)}
	}
	for i, t := range s.Transforms {
		if err := t.Validate(); err != nil {
			return &ValidationError{
				Field:  fmt.Sprintf("transforms[%d]", i),
				Reason: fmt.Sprintf("%s: %v", t.Kind(), err),
			}
		}
	}
	return nil
}

// Validate validates the model section.
func (m *ModelConfig) Validate() error {
	if m.Model == "" {
		return &ValidationError{Field: "model", Reason: "cannot be empty"}
	}
	if m.NumClasses < 0 {
		return &ValidationError{Field: "num_classes", Reason: fmt.Sprintf("cannot be negative, got %d", m.NumClasses)}
	}
	return nil
}

// Validate validates the optimizer section. Kind-specific requirements beyond
// these ranges are the registry's concern.
func (o *OptimizerConfig) Validate() error {
	if o.Type == "" {
		return &ValidationError{Field: "type", Reason: "cannot be empty"}
	}
	if o.LR < 0 {
		return &ValidationError{Field: "lr", Reason: fmt.Sprintf("cannot be negative, got %v", o.LR)}
	}
	if o.Momentum < 0 || o.Momentum > 1 {
		return &ValidationError{Field: "momentum", Reason: fmt.Sprintf("must be between 0 and 1, got %v", o.Momentum)}
	}
	if o.WeightDecay < 0 {
		return &ValidationError{Field: "weight_decay", Reason: fmt.Sprintf("cannot be negative, got %v", o.WeightDecay)}
	}
	return nil
}

// Validate validates the scheduler section.
func (s *LRSchedulerConfig) Validate() error {
	if s.Type == "" {
		return &ValidationError{Field: "type", Reason: "cannot be empty"}
	}
	if s.TMax < 0 {
		return &ValidationError{Field: "T_max", Reason: fmt.Sprintf("cannot be negative, got %d", s.TMax)}
	}
	if s.EtaMin < 0 {
		return &ValidationError{Field: "eta_min", Reason: fmt.Sprintf("cannot be negative, got %v", s.EtaMin)}
	}
	if s.Warmup < 0 {
		return &ValidationError{Field: "warmup", Reason: fmt.Sprintf("cannot be negative, got %d", s.Warmup)}
	}
	if s.WarmupEtaMin < 0 {
		return &ValidationError{Field: "warmup_eta_min", Reason: fmt.Sprintf("cannot be negative, got %v", s.WarmupEtaMin)}
	}
	return nil
}

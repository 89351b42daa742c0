package registry

import (
	"fmt"

	"github.com/vkarpenko/traincfg/internal/config"
)

// Datasets returns the registry of dataset kinds the harness ships.
func Datasets() *Registry {
	r := New("dataset")
	r.Register("MNIST", nil)
	r.Register("FashionMNIST", nil)
	r.Register("CIFAR10", nil)
	r.Register("SVHN", nil)
	return r
}

// Models returns the registry of model kinds.
func Models() *Registry {
	r := New("model")
	r.Register("LeNet5", func(p Params) error {
		if n, ok := intParam(p, "num_classes"); ok && n < 1 {
			return fmt.Errorf("num_classes must be at least 1, got %d", n)
		}
		return nil
	})
	return r
}

// Optimizers returns the registry of optimizer kinds.
func Optimizers() *Registry {
	r := New("optimizer")
	sgd := func(p Params) error {
		lr, ok := floatParam(p, "lr")
		if !ok {
			return fmt.Errorf("lr is required")
		}
		if lr <= 0 {
			return fmt.Errorf("lr must be positive, got %v", lr)
		}
		if m, ok := floatParam(p, "momentum"); ok && (m < 0 || m > 1) {
			return fmt.Errorf("momentum must be between 0 and 1, got %v", m)
		}
		if wd, ok := floatParam(p, "weight_decay"); ok && wd < 0 {
			return fmt.Errorf("weight_decay cannot be negative, got %v", wd)
		}
		return nil
	}
	r.Register("SGD", sgd)
	r.Register("SGDW", sgd)
	r.Register("Adam", func(p Params) error {
		if lr, ok := floatParam(p, "lr"); ok && lr <= 0 {
			return fmt.Errorf("lr must be positive, got %v", lr)
		}
		return nil
	})
	return r
}

// Schedulers returns the registry of learning-rate scheduler kinds.
func Schedulers() *Registry {
	r := New("lr_scheduler")
	r.Register("CosineAnnealingLR", func(p Params) error {
		tmax, ok := intParam(p, "T_max")
		if !ok {
			return fmt.Errorf("T_max is required")
		}
		if tmax < 1 {
			return fmt.Errorf("T_max must be at least 1, got %d", tmax)
		}
		if w, ok := intParam(p, "warmup"); ok && w < 0 {
			return fmt.Errorf("warmup cannot be negative, got %d", w)
		}
		return nil
	})
	r.Register("MultiStepLR", func(p Params) error {
		if g, ok := floatParam(p, "gamma"); ok && g <= 0 {
			return fmt.Errorf("gamma must be positive, got %v", g)
		}
		return nil
	})
	return r
}

// Check resolves all four type names of a validated configuration against the
// builtin registries.
func Check(cfg *config.TrainingConfig) error {
	if err := Datasets().Resolve(cfg.Dataset.Type, nil); err != nil {
		return err
	}
	if err := Models().Resolve(cfg.Model.Model, Params(cfg.Model.ParamBlock())); err != nil {
		return err
	}
	if err := Optimizers().Resolve(cfg.Optimizer.Type, Params(cfg.Optimizer.ParamBlock())); err != nil {
		return err
	}
	if err := Schedulers().Resolve(cfg.LRScheduler.Type, Params(cfg.LRScheduler.ParamBlock())); err != nil {
		return err
	}
	return nil
}

// floatParam reads a numeric parameter, accepting the integer forms the YAML
// decoder may produce.
func floatParam(p Params, key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func intParam(p Params, key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

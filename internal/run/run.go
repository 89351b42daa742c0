package run

import (
	"fmt"
	"path/filepath"

	"github.com/vkarpenko/traincfg/internal/config"
)

// Plan is the epoch schedule of one training run. Epochs are 1-based.
type Plan struct {
	Name     string
	SavePath string
	Epochs   int
	EvalFreq int
}

// NewPlan derives the run plan from a validated configuration.
func NewPlan(cfg *config.TrainingConfig) Plan {
	return Plan{
		Name:     cfg.Name,
		SavePath: cfg.SavePath,
		Epochs:   cfg.Epochs,
		EvalFreq: cfg.EvalFreq,
	}
}

// ShouldEval reports whether the given epoch is an evaluation epoch: every
// EvalFreq epochs, and always the final one.
func (p Plan) ShouldEval(epoch int) bool {
	if epoch < 1 || epoch > p.Epochs {
		return false
	}
	return epoch%p.EvalFreq == 0 || epoch == p.Epochs
}

// EvalEpochs returns the evaluation epochs in order.
func (p Plan) EvalEpochs() []int {
	var epochs []int
	for e := 1; e <= p.Epochs; e++ {
		if p.ShouldEval(e) {
			epochs = append(epochs, e)
		}
	}
	return epochs
}

// CheckpointPath returns the checkpoint location for an epoch under the
// configured save path.
func (p Plan) CheckpointPath(epoch int) string {
	return filepath.Join(p.SavePath, p.Name, fmt.Sprintf("epoch_%d.ckpt", epoch))
}

package run

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vkarpenko/traincfg/internal/config"
)

func TestEvalEpochs(t *testing.T) {
	tests := []struct {
		name     string
		epochs   int
		evalFreq int
		want     []int
	}{
		{name: "every second epoch", epochs: 10, evalFreq: 2, want: []int{2, 4, 6, 8, 10}},
		{name: "final epoch always included", epochs: 5, evalFreq: 2, want: []int{2, 4, 5}},
		{name: "every epoch", epochs: 3, evalFreq: 1, want: []int{1, 2, 3}},
		{name: "single evaluation", epochs: 4, evalFreq: 4, want: []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Plan{Epochs: tt.epochs, EvalFreq: tt.evalFreq}
			if got := p.EvalEpochs(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected eval epochs %v, got %v", tt.want, got)
			}
		})
	}
}

func TestShouldEvalBounds(t *testing.T) {
	p := Plan{Epochs: 10, EvalFreq: 2}

	if p.ShouldEval(0) {
		t.Errorf("Epoch 0 is out of range")
	}
	if p.ShouldEval(11) {
		t.Errorf("Epoch 11 is out of range")
	}
	if p.ShouldEval(3) {
		t.Errorf("Epoch 3 is not an evaluation epoch")
	}
	if !p.ShouldEval(10) {
		t.Errorf("Final epoch must be evaluated")
	}
}

func TestNewPlanFromConfig(t *testing.T) {
	cfg := config.Default()
	p := NewPlan(cfg)

	if p.Name != cfg.Name || p.SavePath != cfg.SavePath {
		t.Errorf("Plan does not carry the config identity: %+v", p)
	}
	if p.Epochs != 10 || p.EvalFreq != 2 {
		t.Errorf("Expected epochs 10 and eval_freq 2, got %+v", p)
	}
}

func TestCheckpointPath(t *testing.T) {
	p := Plan{Name: "lenet5", SavePath: "checkpoints"}

	want := filepath.Join("checkpoints", "lenet5", "epoch_3.ckpt")
	if got := p.CheckpointPath(3); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

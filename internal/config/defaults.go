package config

// DefaultYAML is the canonical LeNet5-on-MNIST experiment document, the
// starting point written by `traincfg -init`.
const DefaultYAML = `name: LeNet5_MNIST
seed: 42
save_path: checkpoints/lenet5_mnist
epochs: 10
eval_freq: 2

Dataset:
  type: MNIST
  data_home: datasets/MNIST
  Split:
    test_ratio: 0.2
    random: true
  Train:
    transforms:
      - !Zero
      - !Pad {padding: 2}
      - !ToTensor
      - !Normalize {mean: [0.1307], std: [0.3081]}
    batch_size: 128
    shuffle: true
    num_workers: 2
  Val:
    transforms:
      - !Pad {padding: 2}
      - !ToTensor
      - !Normalize {mean: [0.1307], std: [0.3081]}
    batch_size: 256
  Test:
    transforms:
      - !Pad {padding: 2}
      - !ToTensor
      - !Normalize {mean: [0.1307], std: [0.3081]}
    batch_size: 256

Model:
  model: LeNet5
  num_classes: 10

Optimizer:
  type: SGDW
  lr: 0.05
  momentum: 0.9
  weight_decay: 0.0001
  nesterov: true

LRScheduler:
  type: CosineAnnealingLR
  T_max: 10
  eta_min: 0.0001
  warmup: 1
  warmup_eta_min: 0.001
`

// Default returns the parsed default configuration.
func Default() *TrainingConfig {
	cfg, err := Parse([]byte(DefaultYAML))
	if err != nil {
		panic("config: default document invalid: " + err.Error())
	}
	return cfg
}

// Package config provides loading and validation of training experiment
// configuration. It handles YAML-based documents describing the dataset,
// per-split transform pipelines, model, optimizer, and learning-rate schedule,
// and hands the validated object graph read-only to the training harness.
package config

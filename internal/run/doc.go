// Package run derives the epoch-level plan from a validated training
// configuration: which epochs are evaluated and where checkpoints go. It
// formats checkpoint paths as strings and never touches the filesystem.
package run

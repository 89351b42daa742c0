// Package transform defines the data preprocessing steps a split's pipeline
// is composed of. Each transform kind is a distinct type carrying its own
// parameters; pipelines are decoded from YAML local tags (e.g. !Pad) and
// preserve document order.
package transform

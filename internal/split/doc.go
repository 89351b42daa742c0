// Package split computes the deterministic train/test index partition implied
// by a dataset's split spec. It only produces index plans; no samples are
// read.
package split

// Package registry resolves the type names a configuration references
// (dataset, model, optimizer, learning-rate scheduler) against explicit
// registries of known kinds. Entries carry a parameter check so unknown names
// and out-of-range kind parameters are caught before a run starts; the actual
// constructors belong to the training harness.
package registry

// Package registry holds the per-family template policies: which parameters
// a family requires or allows, which defaults it injects, whether hidden
// files are copied and whether it ships a test-setup directory. A Registry is
// a lookup table built once and read concurrently.
package registry

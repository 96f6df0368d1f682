// Package initializer drives a scaffolding request end to end. A Template
// binds a project config to its family policy and template directory and
// walks it through parameter validation, pre-processing, structure
// generation, test setup and asynchronous post-processing. The Initializer
// resolves templates from the registry and catalog and turns every failure
// into a Result.
package initializer

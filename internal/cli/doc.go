// Package cli defines the Cobra command tree for the uniinit CLI. The root
// command scaffolds a project; every other file registers one subcommand
// (types, validate, run-command, entry-point, env, config, version) with it.
// Commands only parse flags and format output. Scaffolding lives in
// internal/initializer and the packages beneath it.
package cli

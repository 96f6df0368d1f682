// Package manifest reads a template's config.yml. The raw text is rendered
// with the project's replacement map, validated against the embedded JSON
// schema and decoded into an InitInfo describing how the generated project
// is built, run, tested and linted.
package manifest

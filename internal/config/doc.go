// Package config manages user-level settings stored at ~/.uniinit/config.yaml.
// Every key can be overridden with a UNIINIT_ prefixed environment variable,
// e.g. UNIINIT_TEMPLATES_DIR points the CLI at a local template catalog.
package config

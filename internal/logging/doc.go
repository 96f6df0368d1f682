// Package logging builds the slog logger shared by the CLI and the template
// orchestrator. Terminals get the text handler; pipes and CI get JSON so the
// log stream stays machine-readable next to the CLI's JSON result.
package logging

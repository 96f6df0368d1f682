package cli

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/uniinit-labs/uniinit/internal/manifest"
)

var (
	validateJSON      bool
	validateInstalled map[string]string
)

var validateCmd = &cobra.Command{
	Use:   "validate <template-dir|config.yml>",
	Short: "Validate a template manifest",
	Long: `Check a template manifest against the manifest schema and report any
environment versions that are not valid semver constraints. The argument may
be a template directory or the manifest file itself.

--installed checks tool versions against the manifest's env block and fails
when one does not satisfy its constraint:

  uniinit validate catalog/react --installed node_version=20.11.1`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output in JSON format")
	validateCmd.Flags().StringToStringVar(&validateInstalled, "installed", nil, "Installed tool versions as env_key=version pairs")
	rootCmd.AddCommand(validateCmd)
}

type validateOutput struct {
	Path        string                     `json:"path"`
	Valid       bool                       `json:"valid"`
	Issues      []manifest.ValidationIssue `json:"issues,omitempty"`
	Warnings    []string                   `json:"warnings,omitempty"`
	Unsatisfied []string                   `json:"unsatisfied,omitempty"`
}

// ok reports whether the manifest is valid and every installed tool checked
// meets its constraint.
func (o *validateOutput) ok() bool {
	return o.Valid && len(o.Unsatisfied) == 0
}

// manifestPath accepts either a template directory or a manifest file.
func manifestPath(arg string) string {
	if fi, err := os.Stat(arg); err == nil && fi.IsDir() {
		return manifest.Path(arg)
	}
	return arg
}

func validateManifest(path string, installed map[string]string) (*validateOutput, error) {
	res, err := manifest.ValidateFile(path)
	if err != nil {
		return nil, err
	}
	out := &validateOutput{Path: path, Valid: res.Valid, Issues: res.Issues}
	if !res.Valid {
		return out, nil
	}
	info, err := manifest.Load(path, nil)
	if err != nil {
		return nil, err
	}
	out.Warnings = info.EnvironmentWarnings()
	out.Unsatisfied = checkInstalled(info.Env, installed)
	return out, nil
}

// checkInstalled lists the installed versions that miss their declared
// constraint. Unparseable versions count as misses.
func checkInstalled(env manifest.Env, installed map[string]string) []string {
	var misses []string
	for _, tool := range slices.Sorted(maps.Keys(installed)) {
		version := installed[tool]
		ok, err := env.Satisfies(tool, version)
		switch {
		case err != nil:
			misses = append(misses, err.Error())
		case !ok:
			misses = append(misses, fmt.Sprintf("env.%s: installed %s does not satisfy %q", tool, version, env.Versions[tool]))
		}
	}
	return misses
}

func runValidate(cmd *cobra.Command, args []string) error {
	out, err := validateManifest(manifestPath(args[0]), validateInstalled)
	if err != nil {
		return err
	}

	if validateJSON {
		if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		if out.Valid {
			fmt.Fprintf(w, "%s: valid\n", out.Path)
		} else {
			fmt.Fprintf(w, "%s: %d issue(s)\n", out.Path, len(out.Issues))
			for _, issue := range out.Issues {
				fmt.Fprintf(w, "  %s\n", issue)
			}
		}
		for _, warning := range out.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warning)
		}
		for _, miss := range out.Unsatisfied {
			fmt.Fprintf(w, "  unsatisfied: %s\n", miss)
		}
	}

	if !out.ok() {
		return errReported
	}
	return nil
}

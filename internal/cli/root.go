package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/uniinit-labs/uniinit/internal/branding"
	"github.com/uniinit-labs/uniinit/internal/config"
	"github.com/uniinit-labs/uniinit/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// logger is built in PersistentPreRun once config has loaded.
var logger = logging.Discard()

// errReported marks a failure whose details were already written to stdout
// as JSON, so Execute only sets the exit code.
var errReported = errors.New("failure already reported")

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds a new project from a template family
(react, fastapi, postgresql, ...). Tokens in file names and contents are replaced
with project values, the template's pre-processing script runs before the copy
and its post-processing script runs in the background afterwards.

The result is printed as a single JSON document on stdout; logs go to stderr.`,
	Example: `  uniinit --name my-app --type react --author "Jane" --output ./my-app --parameters typescript=true,styling_solution=styled-components
  uniinit --name mydb --type postgresql --author "Jane" --output ./mydb
  uniinit --config project.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Stray arguments reach runInit so they are reported as JSON.
	Args: cobra.ArbitraryArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		cfg := logging.DefaultConfig()
		cfg.Level = logging.ParseLevel(config.LogLevel())
		cfg.Output = cmd.ErrOrStderr()
		logger = logging.New(cfg)
		slog.SetDefault(logger)
	},
	RunE: runInit,
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if cmd != rootCmd {
			return err
		}
		return reportInitError(cmd, err)
	})
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

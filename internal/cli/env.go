package cli

import (
	"fmt"
	"maps"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uniinit-labs/uniinit/internal/envmap"
)

const (
	envToCommon    = "common"
	envToFramework = "framework"
)

var (
	envFramework string
	envTo        string
	envFile      string
)

func init() {
	envCmd.Flags().StringVar(&envFramework, "framework", "", "Framework whose env.template drives the mapping")
	envCmd.Flags().StringVar(&envTo, "to", envToCommon, "Direction: common or framework")
	envCmd.Flags().StringVar(&envFile, "file", "", "Read variables from a .env file before the KEY=VALUE arguments")
	_ = envCmd.MarkFlagRequired("framework")

	envCmd.AddCommand(envFrameworksCmd)
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env KEY=VALUE...",
	Short: "Map environment variables between framework and common names",
	Long: `Rename environment variables using a framework's env.template, which maps
framework variable names (REACT_APP_SUPABASE_URL) to common ones (SUPABASE_URL).

  uniinit env --framework react REACT_APP_SUPABASE_URL=https://x.supabase.co
  uniinit env --framework react --to framework SUPABASE_URL=https://x.supabase.co
  uniinit env --framework vite --file .env`,
	RunE: runEnv,
}

var envFrameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List frameworks with an env mapping",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, f := range envmap.Frameworks() {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}

// parseEnvArgs turns KEY=VALUE arguments into a map. Later keys win.
func parseEnvArgs(args []string) (map[string]string, error) {
	env := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid variable %q: expected KEY=VALUE", arg)
		}
		env[strings.TrimSpace(key)] = value
	}
	return env, nil
}

func runEnv(cmd *cobra.Command, args []string) error {
	env := map[string]string{}
	if envFile != "" {
		fromFile, err := envmap.ParseTemplate(envFile)
		if err != nil {
			return err
		}
		maps.Copy(env, fromFile)
	}
	fromArgs, err := parseEnvArgs(args)
	if err != nil {
		return err
	}
	maps.Copy(env, fromArgs)

	var mapped map[string]string
	switch envTo {
	case envToCommon:
		mapped, err = envmap.ToCommon(envFramework, env)
	case envToFramework:
		mapped, err = envmap.ToFramework(envFramework, env)
	default:
		return fmt.Errorf("invalid --to %q: want %s or %s", envTo, envToCommon, envToFramework)
	}
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), mapped)
}

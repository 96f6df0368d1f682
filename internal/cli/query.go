package cli

import (
	"github.com/spf13/cobra"

	"github.com/uniinit-labs/uniinit/internal/initializer"
	"github.com/uniinit-labs/uniinit/internal/project"
)

// queryOptions are shared by the commands that render a manifest without
// scaffolding anything.
type queryOptions struct {
	projectType string
	parameters  string
	name        string
}

var (
	runCommandOpts queryOptions
	entryPointOpts queryOptions
)

var runCommandCmd = &cobra.Command{
	Use:   "run-command",
	Short: "Print the run command of a template",
	Long: `Render the template manifest for --type and print its run_tool command.
Placeholders such as <port> and <host> are left for the caller.`,
	Args: cobra.NoArgs,
	RunE: runRunCommand,
}

var entryPointCmd = &cobra.Command{
	Use:   "entry-point",
	Short: "Print and validate the entry-point URL of a template",
	Args:  cobra.NoArgs,
	RunE:  runEntryPoint,
}

func init() {
	for _, q := range []struct {
		cmd  *cobra.Command
		opts *queryOptions
	}{
		{runCommandCmd, &runCommandOpts},
		{entryPointCmd, &entryPointOpts},
	} {
		q.cmd.Flags().StringVar(&q.opts.projectType, "type", "", "Project type")
		q.cmd.Flags().StringVar(&q.opts.parameters, "parameters", "", "Additional parameters as comma-separated key=value pairs")
		q.cmd.Flags().StringVar(&q.opts.name, "name", "project", "Project name used to render the manifest")
		_ = q.cmd.MarkFlagRequired("type")
		rootCmd.AddCommand(q.cmd)
	}
}

// template resolves a template for a minimal config with the family
// defaults applied. The output path is a placeholder: nothing is written.
func (o queryOptions) template(cmd *cobra.Command) (*initializer.Template, error) {
	t, err := project.ParseType(o.projectType)
	if err != nil {
		return nil, err
	}
	cfg := &project.Config{
		Name:       o.name,
		Version:    "0.1.0",
		Type:       t,
		OutputPath: ".",
		Parameters: project.ParseParameters(o.parameters),
	}
	tmpl, err := newInitializer(cmd).CreateTemplate(cfg)
	if err != nil {
		return nil, err
	}
	tmpl.Policy.ApplyDefaults(cfg.Parameters)
	return tmpl, nil
}

type runCommandOutput struct {
	ProjectType string `json:"project_type"`
	RunCommand  string `json:"run_command"`
}

func runRunCommand(cmd *cobra.Command, args []string) error {
	tmpl, err := runCommandOpts.template(cmd)
	if err != nil {
		return err
	}
	command, err := tmpl.RunCommand()
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), runCommandOutput{
		ProjectType: string(tmpl.Config.Type),
		RunCommand:  command,
	})
}

type entryPointOutput struct {
	ProjectType   string `json:"project_type"`
	EntryPointURL string `json:"entry_point_url"`
	Valid         bool   `json:"valid"`
	Error         string `json:"error,omitempty"`
}

func runEntryPoint(cmd *cobra.Command, args []string) error {
	tmpl, err := entryPointOpts.template(cmd)
	if err != nil {
		return err
	}
	out := entryPointOutput{ProjectType: string(tmpl.Config.Type), Valid: true}
	out.EntryPointURL, err = tmpl.EntryPointURL()
	if err != nil {
		out.Valid = false
		out.Error = err.Error()
	}
	if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	if !out.Valid {
		return errReported
	}
	return nil
}

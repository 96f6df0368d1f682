package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uniinit-labs/uniinit/internal/catalog"
	"github.com/uniinit-labs/uniinit/internal/registry"
)

var typesJSON bool

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List supported project types",
	Long: `List every registered project type with its template directory. Database
families are marked, and each entry says whether its template is present in
the catalog.`,
	Args: cobra.NoArgs,
	RunE: runTypes,
}

func init() {
	typesCmd.Flags().BoolVar(&typesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(typesCmd)
}

// typeEntry describes one registered family for display.
type typeEntry struct {
	Type      string   `json:"type"`
	Template  string   `json:"template"`
	Database  bool     `json:"database"`
	Available bool     `json:"available"`
	Required  []string `json:"required,omitempty"`
}

func typeEntries(reg *registry.Registry, cat *catalog.Catalog) []typeEntry {
	var entries []typeEntry
	for _, t := range reg.Types() {
		p, err := reg.Lookup(t)
		if err != nil {
			continue
		}
		entries = append(entries, typeEntry{
			Type:      string(t),
			Template:  p.TemplateDir(),
			Database:  t.IsDatabase(),
			Available: cat.Has(p),
			Required:  p.Required,
		})
	}
	return entries
}

func runTypes(cmd *cobra.Command, args []string) error {
	cat := catalog.Open()
	entries := typeEntries(registry.Default(), cat)

	if typesJSON {
		return writeJSON(cmd.OutOrStdout(), entries)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Catalog: %s\n\n", cat.Root)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tKIND\tTEMPLATE\tAVAILABLE\tREQUIRED")
	for _, e := range entries {
		kind := "app"
		if e.Database {
			kind = "database"
		}
		avail := "no"
		if e.Available {
			avail = "yes"
		}
		req := "-"
		if len(e.Required) > 0 {
			req = fmt.Sprint(e.Required)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Type, kind, e.Template, avail, req)
	}
	return w.Flush()
}

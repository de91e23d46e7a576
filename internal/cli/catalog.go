package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ojocivico/planscore/internal/catalog"
)

var showCatalogPath string

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate methodology catalogs",
	Long: `Inspect and validate the versioned methodology catalog.

The catalog is the entire methodology as data: pillars and weights,
classification keywords, dimension patterns, penalty rules and
informative patterns. Every run validates it before touching a PDF;
this command does the same validation standalone.`,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a catalog file",
	Long:  `Load a catalog file and run the full structural validation. With no argument, validates the embedded default catalog.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		cat, err := catalog.Load(path)
		if err != nil {
			return fmt.Errorf("catalog invalid: %w", err)
		}
		source := "embedded default"
		if path != "" {
			source = path
		}
		fmt.Printf("✓ Catalog valid: v%s (%s), %d pillars\n", cat.Version, source, len(cat.Pillars))
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active catalog's pillars and weights",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(showCatalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		fmt.Printf("Catalog v%s\n\n", cat.Version)
		fmt.Printf("%-6s %-40s %-8s %s\n", "ID", "Pilar", "Peso", "Grupos")
		fmt.Println(strings.Repeat("-", 70))
		for _, pillar := range cat.Pillars {
			var groups []string
			if pillar.Priority {
				groups = append(groups, "prioritario")
			}
			if pillar.Critical {
				groups = append(groups, "crítico")
			}
			fmt.Printf("%-6s %-40s %-8.2f %s\n", pillar.ID, pillar.Name, pillar.Weight, strings.Join(groups, ", "))
		}
		fmt.Println()
		fmt.Printf("Urgencias:   %d\n", len(cat.Urgencies))
		fmt.Printf("Viabilidad:  %d familias\n", len(cat.Viability))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogShowCmd)

	catalogShowCmd.Flags().StringVar(&showCatalogPath, "catalog", "", "catalog file (default: embedded catalog)")
}

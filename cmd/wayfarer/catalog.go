package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfarer/internal/cli"
	"github.com/aretw0/wayfarer/internal/presentation/tui"
	"github.com/aretw0/wayfarer/pkg/catalog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect place catalogs",
	Long: `Lists and validates place catalogs. A catalog is a YAML/JSON file or a Loam
directory of place documents; without one, the built-in catalog is used.`,
}

var catalogLsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List destinations and their categories",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := openCatalog(cmd, args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, city := range c.Cities() {
			fmt.Fprintf(out, "%s (%d places): %s\n", city, len(c.CityPlaces(city)), strings.Join(c.Categories(city), ", "))
		}
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check catalog records and report the quarantined ones",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, report, err := openCatalog(cmd, args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, r := range report.Rejected {
			tui.Failure(out, "record %d (%q): %s", r.Index, r.Place.PlaceName, r.Reason)
		}
		if !report.OK() {
			return fmt.Errorf("catalog has %d invalid records (%d accepted)", len(report.Rejected), report.Accepted)
		}
		tui.Success(out, "Catalog is valid: %d places.", report.Accepted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogLsCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}

// openCatalog loads the catalog named by the argument, the --catalog flag or the config.
func openCatalog(cmd *cobra.Command, args []string) (*catalog.Catalog, catalog.Report, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, catalog.Report{}, err
	}
	path := cfg.Catalog.Path
	if len(args) > 0 {
		path = args[0]
	}

	src, err := cli.CatalogSource(path)
	if err != nil {
		return nil, catalog.Report{}, err
	}
	if src == nil {
		c, report := catalog.New(catalog.Default().Places())
		return c, report, nil
	}
	return catalog.Load(cmd.Context(), src)
}

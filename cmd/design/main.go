// Command design is the battery pack enumeration CLI (spec §6). It loads a
// requirements file and a cell catalog, runs the cross-cell design driver,
// and writes the ranked survivors to a report file.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"batterydesign/internal/cell"
	"batterydesign/internal/config"
	"batterydesign/internal/design"
	"batterydesign/internal/report"
	"batterydesign/internal/requirements"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "design",
		Short: "Enumerate and rank feasible battery pack designs",
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newCatalogCommand())
	root.AddCommand(newCADCommand())
	root.AddCommand(newLifeCycleCommand())
	return root
}

func newRunCommand() *cobra.Command {
	var (
		reqPath      string
		catalogPath  string
		reportPath   string
		configPath   string
		maxSolutions int
		cellFilter   string
		overheadName string
		cores        int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Enumerate candidate topologies and report the top-ranked designs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if overheadName != "" {
				cfg.OverheadPlugin = overheadName
			}
			if cores > 0 {
				cfg.Cores = cores
			}
			if maxSolutions > 0 {
				cfg.MaxNumberOfSolutions = maxSolutions
			}

			req, err := requirements.Load(reqPath)
			if err != nil {
				return err
			}

			catalog, err := cell.LoadCatalog(catalogPath)
			if err != nil {
				return err
			}

			manufacturer, model := req.Manufacturer, req.Model
			if cellFilter != "" {
				manufacturer, model = splitCellFilter(cellFilter)
			}
			cells := catalog.Filter(manufacturer, model, req.Format)
			if len(cells) == 0 {
				return fmt.Errorf("design: no cells in %s match the requested manufacturer/model/format filters", catalogPath)
			}

			opts := design.Options{
				PinsPerSlave:   cfg.PinsPerSlave,
				Cores:          cfg.Cores,
				OverheadPlugin: cfg.OverheadPlugin,
				CoolingFilter:  req.Cooling,
			}

			records, err := design.Run(cmd.Context(), cells, req, opts, cfg.MaxNumberOfSolutions)
			if err != nil {
				return err
			}

			writeReport := report.WriteCSV
			if strings.HasSuffix(strings.ToLower(reportPath), ".json") {
				writeReport = report.WriteJSON
			}
			if err := writeReport(reportPath, records); err != nil {
				return err
			}
			fmt.Printf("design: wrote %d ranked designs to %s\n", len(records), reportPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&reqPath, "requirements", "r", "", "path to the requirements YAML file (required)")
	cmd.Flags().StringVarP(&catalogPath, "catalog", "d", "", "path to a cell catalog file or directory (required)")
	cmd.Flags().StringVar(&reportPath, "report", "report.csv", "output report path (.csv or .json)")
	cmd.Flags().StringVar(&configPath, "config", "", "optional run configuration YAML file")
	cmd.Flags().IntVar(&maxSolutions, "max-number-of-solutions", 0, "cap the number of ranked designs kept (0 = use config default)")
	cmd.Flags().StringVar(&cellFilter, "cell", "", "restrict the run to one cell, given as MANUFACTURER:MODEL")
	cmd.Flags().StringVar(&overheadName, "overhead-plugin", "", "name of the registered overhead provider to use (default: \"default\")")
	cmd.Flags().IntVar(&cores, "cores", 0, "number of cells to size concurrently (0 = use config default)")
	_ = cmd.MarkFlagRequired("requirements")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func splitCellFilter(s string) (manufacturer, model string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}

func newCatalogCommand() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and manage the cell catalog",
	}
	catalogCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the cells in a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("catalog list: expected exactly one catalog path")
			}
			catalog, err := cell.LoadCatalog(args[0])
			if err != nil {
				return err
			}
			for _, c := range catalog.Cells {
				fmt.Println(c)
			}
			return nil
		},
	})
	catalogCmd.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Add a cell record to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("catalog add: not implemented in this build")
		},
	})
	catalogCmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Remove a cell record from the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("catalog remove: not implemented in this build")
		},
	})
	return catalogCmd
}

func newCADCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cad",
		Short: "Render a CAD preview of a ranked design",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("cad: not implemented in this build")
		},
	}
}

func newLifeCycleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate-life-cycle",
		Short: "Simulate cycle-life degradation of a ranked design",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("simulate-life-cycle: not implemented in this build")
		},
	}
}

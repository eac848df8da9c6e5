package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"retail.GO/config"
	"retail.GO/model/entity"
	"retail.GO/service/etl"
)

var (
	etlFile          string
	etlOutDir        string
	etlChart         string
	etlReuseProducts bool
	etlMigrate       bool
)

var etlImportCmd = &cobra.Command{
	Use:   "etl:import",
	Short: "Run the CSV ETL: extract, validate, load stores/products/inventory/supplies, report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadETLConfig()
		if etlFile != "" {
			cfg.InputFile = etlFile
		}
		if etlOutDir != "" {
			cfg.OutputDir = etlOutDir
		}
		if etlChart != "" {
			cfg.ChartFile = etlChart
		}

		db, err := config.NewDB()
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer config.CloseDB(db)

		if etlMigrate || config.LoadAppConfig().AutoMigrate {
			if err := entity.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		config.InitRedis()

		p := etl.NewPipeline(db, cfg, config.RedisClient)
		p.Load.ReuseProducts = etlReuseProducts
		p.Reporter.Out = cmd.OutOrStdout()

		summary, err := p.Run(cmd.Context(), cfg.InputFile)
		if summary != nil {
			printReport(cmd.OutOrStdout(), summary)
		}
		if err != nil {
			return fmt.Errorf("ETL failed: %w", err)
		}
		return nil
	},
}

func printReport(w io.Writer, s *etl.Summary) {
	for _, r := range s.Rejections {
		fmt.Fprintf(w, "  [rejected] row %d: %s\n", r.Row, r.Error)
	}
	fmt.Fprintf(w, `
=== ETL Report ===
Run ID:         %s
Source:         %s
Status:         %s
Valid rows:     %d
Rejected rows:  %d
Loaded:         %d
Stores:         %d created
Categories:     %d created
Suppliers:      %d created
Products:       %d created, %d reused
Inventory:      %d created, %d updated
Supplies:       %d
Loaded file:    %s
Errors file:    %s
Total time:     %s
==================
`, s.RunID, s.Source, s.Status, s.Valid, s.Errors, s.Loaded,
		s.StoresCreated, s.CategoriesCreated, s.SuppliersCreated,
		s.ProductsCreated, s.ProductsReused,
		s.InventoryCreated, s.InventoryUpdated, s.Supplies,
		s.Files.Loaded, s.Files.Errors,
		s.Duration().Round(time.Millisecond))
}

func init() {
	etlImportCmd.Flags().StringVarP(&etlFile, "file", "f", "", "CSV file path (default ETL_INPUT_FILE)")
	etlImportCmd.Flags().StringVarP(&etlOutDir, "out", "o", "", "Output directory for loaded_data.csv and errors.csv (default ETL_OUTPUT_DIR)")
	etlImportCmd.Flags().StringVar(&etlChart, "chart", "", "Also save the result chart as .png/.jpg/.webp")
	etlImportCmd.Flags().BoolVar(&etlReuseProducts, "reuse-products", false, "Reuse products with equal name, price and category instead of inserting")
	etlImportCmd.Flags().BoolVar(&etlMigrate, "migrate", false, "Create missing tables before loading")
	rootCmd.AddCommand(etlImportCmd)
}

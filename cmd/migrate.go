package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"retail.GO/config"
	"retail.GO/model/entity"
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Create missing tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.NewDB()
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer config.CloseDB(db)

		if err := entity.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date (%d tables).\n", len(entity.Tables()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

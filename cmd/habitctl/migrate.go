package main

import (
	"github.com/fatih/color"
	"github.com/habithub/habithub-api/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Printf("✓ Schema is up to date (%s)\n", cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

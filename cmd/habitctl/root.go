package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/habithub/habithub-api/internal/catalog"
	"github.com/habithub/habithub-api/internal/config"
	"github.com/habithub/habithub-api/internal/database"
	"github.com/habithub/habithub-api/internal/logging"
	"github.com/habithub/habithub-api/internal/notifier"
	"github.com/habithub/habithub-api/internal/service"
	"github.com/habithub/habithub-api/internal/store"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfg *config.Config
	db  *gorm.DB
)

var rootCmd = &cobra.Command{
	Use:   "habitctl",
	Short: "Administer a HabitHub database",
	Long: `habitctl runs maintenance tasks against the database configured for the
HabitHub server. It reads the same environment variables (DATABASE_DRIVER,
DATABASE_PATH, DATABASE_URL, TIMEZONE, ...) and the optional CONFIG_FILE.

EXAMPLES:

  habitctl migrate              # Create or update tables
  habitctl catalog              # Print the achievement catalog
  habitctl catalog --templates  # Print the habit templates
  habitctl stats 42             # Show stats for user 42
  habitctl recompute 42         # Rebuild user 42's streaks and counters`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}
		if _, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db == nil {
			return nil
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	},
}

// openEngine connects to the database (migrating it) and builds the engine.
func openEngine(ctx context.Context) (*service.Engine, *store.Store, error) {
	var err error
	db, err = database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	cat, err := catalog.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	s := store.New(db)
	engine := service.NewEngine(s, cat, notifier.FromConfig(ctx, cfg), service.Options{
		Location:         loc,
		XPPerCompletion:  cfg.XPPerCompletion,
		DefaultStatsDays: cfg.StatsDefaultDays,
	})
	return engine, s, nil
}

func printKV(key string, value any) {
	fmt.Printf("  %s %v\n", color.New(color.Faint).Sprintf("%-20s", key), value)
}

package cmd

import (
	"context"
	"log"

	"github.com/frahmantamala/user-dashboard/db"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run the embedded db migrations against the configured database",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	dbConn, err := initDB(cfg.Database)
	if err != nil {
		log.Fatalf("migrate: failed to open DB: %v\n", err)
	}
	defer dbConn.Close()

	dialect, _ := cfg.Database.DriverName()
	if migrateRollback {
		if err := db.Down(ctx, dbConn.DB, dialect); err != nil {
			log.Fatal(err)
		}
		return nil
	}

	if err := db.Up(ctx, dbConn.DB, dialect); err != nil {
		log.Fatal(err)
	}

	return nil
}

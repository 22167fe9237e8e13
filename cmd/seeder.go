package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/user-dashboard/internal/directory"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the directory with the canonical users",
	Long:  `Seed the directory database with the ten JSONPlaceholder users for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		inserted, err := directory.Seed(context.Background(), db, directory.CanonicalUsers, clearData)
		if err != nil {
			log.Fatalf("failed to seed directory users: %v", err)
		}

		fmt.Printf("Seeded %d directory users (%d already present)\n", inserted, int64(len(directory.CanonicalUsers))-inserted)
	},
}

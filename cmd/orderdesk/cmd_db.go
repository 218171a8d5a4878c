package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/database/seeders"
	"github.com/shashiranjanraj/orderdesk/pkg/database"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	logger.Setup(config.AppEnv(), config.LogLevel())
	return database.Connect()
}

// withDB opens the database for one command and closes it afterwards.
func withDB(fn func(db *gorm.DB) error) error {
	db, err := bootDB()
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck
	return fn(db)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			n, err := migration.New(db, cmd.OutOrStdout()).Run()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", n)
			return nil
		})
	},
}

var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			n, err := migration.New(db, cmd.OutOrStdout()).Rollback()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) rolled back\n", n)
			return nil
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			statuses, err := migration.New(db, nil).Status()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "MIGRATION\tRAN\tBATCH")
			for _, s := range statuses {
				batch := "-"
				if s.Ran {
					batch = fmt.Sprint(s.Batch)
				}
				fmt.Fprintf(w, "%s\t%t\t%s\n", s.Name, s.Ran, batch)
			}
			return w.Flush()
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *gorm.DB) error {
			fmt.Fprintln(os.Stdout, "Running seeders…")
			return seeders.RunAll(db)
		})
	},
}

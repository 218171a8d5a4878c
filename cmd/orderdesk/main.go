// Command orderdesk runs the order management API and its maintenance tasks.
//
//	orderdesk serve
//	orderdesk migrate | migrate:rollback | migrate:status
//	orderdesk seed
//	orderdesk route:list
//	orderdesk user:create --staff <username> <email>
//	orderdesk user:promote <username>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/shashiranjanraj/orderdesk/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "orderdesk",
	Short:         "Order and product management API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userPromoteCmd)
}

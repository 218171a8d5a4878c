package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/orderdesk/app/routes"
	"github.com/shashiranjanraj/orderdesk/internal/server"
	"github.com/shashiranjanraj/orderdesk/pkg/router"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Start(ctx)
	},
}

var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered API routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRoutes(cmd.OutOrStdout())
	},
}

// printRoutes registers the API on a throwaway router; no handler runs, so
// no dependencies are needed.
func printRoutes(out io.Writer) error {
	r := router.New()
	routes.RegisterAPI(r, routes.Services{})

	infos := r.Routes()
	if len(infos) == 0 {
		fmt.Fprintln(out, "No routes registered.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME")
	fmt.Fprintln(w, "------\t----\t----")
	for _, ri := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
	}
	return w.Flush()
}

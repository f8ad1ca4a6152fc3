// @title         accounts-service API
// @version       1.0
// @description   User accounts: authentication, registration, password reset.
// @BasePath      /
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token. Accepted as "Bearer <JWT>" or "<JWT>".
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/artem13815/accounts/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	opts := serveOptions{migrate: true}
	root := &cobra.Command{
		Use:          "accounts",
		Short:        "User accounts service",
		Long:         "accounts serves the user account API (default) or applies database migrations.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), config.Load(), opts)
		},
	}
	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	swagger "github.com/gofiber/swagger"
	"github.com/spf13/cobra"

	_ "github.com/artem13815/accounts/docs"

	apihttp "github.com/artem13815/accounts/api/http"
	"github.com/artem13815/accounts/api/http/handlers"
	"github.com/artem13815/accounts/pkg/config"
	"github.com/artem13815/accounts/pkg/health"
	"github.com/artem13815/accounts/pkg/notify/sendgrid"
	"github.com/artem13815/accounts/pkg/security/jwt"
	"github.com/artem13815/accounts/pkg/security/password"
	"github.com/artem13815/accounts/pkg/user"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	port    string
	migrate bool
}

func newServeCommand() *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), config.Load(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.port, "port", "", "listen port (overrides PORT)")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", true, "apply database migrations before serving")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config, opts serveOptions) error {
	if opts.port != "" {
		cfg.Port = opts.port
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	st, err := openStore(ctx, cfg, opts.migrate)
	if err != nil {
		return err
	}
	defer st.close()

	hasher, err := password.New(cfg.PasswordHasher, cfg.PasswordHMACKey)
	if err != nil {
		return err
	}
	if cfg.SendGridAPIKey == "" {
		log.Println("WARN SENDGRID_API_KEY is not set; forgot-password mail will not be delivered")
	}
	notifier := sendgrid.New(cfg.SendGridAPIKey, cfg.SendGridBaseURL, cfg.MailFromAddress, cfg.MailFromName)

	userUC := user.NewService(st.repo, hasher, password.NewGenerator(), notifier, cfg.Policy(),
		user.WithMailTimeout(cfg.MailTimeout),
	)

	// Token issuance stays off unless explicitly enabled; the gate still validates tokens.
	var tokens user.TokenGenerator
	if cfg.IssueTokens {
		tokens = jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	}
	authMW := jwt.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)

	app := apihttp.NewApp(apihttp.AppOptions{CORSOrigins: cfg.CORSOrigins, AccessLog: true})
	apihttp.Register(app,
		handlers.NewUserHandler(userUC, tokens),
		handlers.NewHealthHandler(health.NewService(st.checker)),
		authMW,
	)
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("HTTP server listening on :%s (driver=%s, hasher=%s)", cfg.Port, cfg.DBDriver, cfg.PasswordHasher)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

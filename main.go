// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/pollhub/cliparse"
	"github.com/danielhkuo/pollhub/db"
	"github.com/danielhkuo/pollhub/identity"
	"github.com/danielhkuo/pollhub/models"
	"github.com/danielhkuo/pollhub/router"
	"github.com/danielhkuo/pollhub/store"
)

var (
	flags cliparse.Config
	cfg   cliparse.Config
)

var rootCmd = &cobra.Command{
	Use:          "pollhub",
	Short:        "Polling server with accounts, anonymous votes and admin moderation",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = cliparse.Resolve(flags)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		provider := identity.NewSQLProvider(conn, []byte(cfg.AuthSecret), cfg.SessionTTL)
		if n, err := provider.PurgeRevoked(cmd.Context()); err != nil {
			slog.Error("failed to purge revoked sessions", "error", err)
		} else if n > 0 {
			slog.Info("purged revoked sessions", "count", n)
		}

		unsubscribe := provider.Subscribe(func(ev identity.Event) {
			if ev.User != nil {
				slog.Info("auth event", "type", ev.Type, "user_id", ev.User.ID)
			}
		})
		defer unsubscribe()

		current := identity.Watch(provider)
		defer current.Close()
		current.OnChange(func(u *models.User) {
			if u == nil {
				slog.Debug("last signed-in user signed out")
				return
			}
			slog.Debug("last signed-in user", "user_id", u.ID)
		})

		server := http.Server{
			Handler:           router.NewRouter(conn, cfg, provider),
			Addr:              ":" + strconv.Itoa(cfg.Port),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			slog.Info("Listening", "port", cfg.Port, "site_url", cfg.SiteURL)
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		slog.Info("Server closed")
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		slog.Info("Database schema ready", "type", cfg.DatabaseType)
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the admin roster",
}

var adminGrantCmd = &cobra.Command{
	Use:   "grant <user-id>",
	Short: "Grant admin rights to a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := store.NewSQLStore(conn).GrantAdmin(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to grant admin: %w", err)
		}
		slog.Info("admin granted", "user_id", args[0])
		return nil
	},
}

var adminRevokeCmd = &cobra.Command{
	Use:   "revoke <user-id>",
	Short: "Deactivate a user's admin membership",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		err = store.NewSQLStore(conn).RevokeAdmin(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("user %s is not on the admin roster", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to revoke admin: %w", err)
		}
		slog.Info("admin revoked", "user_id", args[0])
		return nil
	},
}

// openDB connects and makes sure the schema exists
func openDB() (*sqlx.DB, error) {
	conn, err := db.Open(cfg.DatabaseURL, cfg.DatabaseType)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("schema creation failed: %w", err)
	}
	return conn, nil
}

func init() {
	cliparse.Bind(rootCmd.PersistentFlags(), &flags)

	adminCmd.AddCommand(adminGrantCmd, adminRevokeCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd, adminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("pollhub failed", "error", err)
		os.Exit(1)
	}
}

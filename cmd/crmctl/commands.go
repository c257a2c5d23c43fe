package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mcacrm/internal/config"
	"mcacrm/internal/metrics"
	"mcacrm/internal/models"
	"mcacrm/internal/repositories"
	"mcacrm/internal/repositories/cache"
	"mcacrm/internal/services/deal"
	"mcacrm/internal/utils"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func openDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := repositories.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closeFn, nil
}

// dealService wires the deal service with the summary cache when redis
// answers, so recomputes drop the stale summary.
func dealService(ctx context.Context, cfg *config.Config, db *gorm.DB) (deal.Service, func()) {
	svc := cache.NewCacheService(cache.NewRedisClient(cfg.Redis), cfg.Redis.SummaryTTL)
	if err := svc.HealthCheck(ctx); err != nil {
		_ = svc.Close()
		return deal.NewService(repositories.NewStore(db), nil, metrics.NoopCollector{}), func() {}
	}
	return deal.NewService(repositories.NewStore(db), deal.NewRedisSummaryCache(svc), metrics.NoopCollector{}),
		func() { _ = svc.Close() }
}

func migrateCmd(cfg *config.Config) *cobra.Command {
	var drop bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			if drop {
				if err := repositories.DropAllTables(db); err != nil {
					return fmt.Errorf("drop tables: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "dropped all tables")
			}
			if err := repositories.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
	cmd.Flags().BoolVar(&drop, "drop", false, "drop every table before migrating (destroys data)")
	return cmd
}

func recomputeCmd(cfg *config.Config) *cobra.Command {
	var dealID uint
	cmd := &cobra.Command{
		Use:   "recompute-balances",
		Short: "Rebuild deal balances from payment history",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			ctx := cmd.Context()
			svc, closeCache := dealService(ctx, cfg, db)
			defer closeCache()

			if dealID != 0 {
				d, err := svc.RecomputeBalance(ctx, dealID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: balance %s, status %s\n",
					d.DealNumber, d.BalanceRemaining.StringFixed(2), d.Status)
				return nil
			}
			n, err := svc.RecomputeAll(ctx)
			if err != nil {
				return fmt.Errorf("recomputed %d deals before failing: %w", n, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recomputed %d deals\n", n)
			return nil
		},
	}
	cmd.Flags().UintVar(&dealID, "deal", 0, "recompute a single deal by id")
	return cmd
}

func summaryCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the portfolio summary as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			ctx := cmd.Context()
			svc, closeCache := dealService(ctx, cfg, db)
			defer closeCache()

			summary, err := svc.Summary(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
}

func tokenCmd(cfg *config.Config) *cobra.Command {
	var (
		name string
		role string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token [subject]",
		Short: "Issue an operator bearer token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			if len(models.GetDefaultPermissions(role)) == 0 {
				return fmt.Errorf("unknown role %q", role)
			}
			tok, err := utils.GenerateOperatorToken(cfg.JWTSecret, args[0], name, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name carried in the token")
	cmd.Flags().StringVar(&role, "role", models.RoleUnderwriter, "admin, underwriter, collections or viewer")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	return cmd
}

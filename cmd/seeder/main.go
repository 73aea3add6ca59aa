// cmd/seeder/main.go
package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/unclebandit/audience-crm/internal/config"
	"github.com/unclebandit/audience-crm/internal/db"
	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/logger"
	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/repository"
	"github.com/unclebandit/audience-crm/internal/seed"
)

type options struct {
	databaseURL string
	migrate     bool
	overwrite   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "seeder",
		Short: "Load the demo audiences, campaigns and contacts into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if _, err := logger.Init(cfg.Log); err != nil {
				return err
			}
			if opts.databaseURL == "" {
				opts.databaseURL = cfg.DatabaseURL
			}
			if opts.databaseURL == "" {
				return fmt.Errorf("no database URL: set DATABASE_URL or --database-url")
			}
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.databaseURL, "database-url", "", "Postgres DSN (defaults to DATABASE_URL)")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", true, "apply schema migrations first")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "replace rows that already exist")
	return cmd
}

func run(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := db.Open(ctx, opts.databaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if opts.migrate {
		if err := db.Migrate(conn); err != nil {
			return err
		}
	}

	if err := seedAll(ctx, &repository.AudienceRepository{DB: conn}, seed.Audiences(), opts.overwrite); err != nil {
		return fmt.Errorf("seed audiences: %w", err)
	}
	if err := seedAll(ctx, &repository.ContactRepository{DB: conn}, seed.Contacts(), opts.overwrite); err != nil {
		return fmt.Errorf("seed contacts: %w", err)
	}
	if err := seedAll(ctx, &repository.CampaignRepository{DB: conn}, seed.Campaigns(), opts.overwrite); err != nil {
		return fmt.Errorf("seed campaigns: %w", err)
	}
	log.Info("✅ Database seeding completed successfully!")
	return nil
}

type entity interface {
	GetID() string
}

// seedAll inserts items that are missing and, with overwrite, updates the rest.
func seedAll[T entity](ctx context.Context, repo repository.Repository[T], items []T, overwrite bool) error {
	for i := range items {
		item := &items[i]
		_, err := repo.GetByID(ctx, (*item).GetID())
		switch {
		case appErrors.IsNotFound(err):
			err = repo.Create(ctx, item)
		case err == nil && overwrite:
			err = repo.Update(ctx, item)
		case err == nil:
			log.WithField("id", (*item).GetID()).Debug("Skipping existing row")
			continue
		}
		if err != nil {
			return err
		}
		log.WithField("id", (*item).GetID()).Info("🌱 Seeded")
	}
	return nil
}

var (
	_ entity = model.Audience{}
	_ entity = model.Campaign{}
	_ entity = model.Contact{}
)

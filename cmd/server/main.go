// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/unclebandit/audience-crm/internal/config"
	"github.com/unclebandit/audience-crm/internal/controller"
	"github.com/unclebandit/audience-crm/internal/dashboard"
	"github.com/unclebandit/audience-crm/internal/db"
	"github.com/unclebandit/audience-crm/internal/logger"
	"github.com/unclebandit/audience-crm/internal/queue"
	"github.com/unclebandit/audience-crm/internal/repository"
	"github.com/unclebandit/audience-crm/internal/seed"
	"github.com/unclebandit/audience-crm/internal/service"
)

type repositories struct {
	audiences repository.AudienceRepositoryInterface
	campaigns repository.CampaignRepositoryInterface
	contacts  repository.ContactRepositoryInterface
	close     func() error
}

func openRepositories(ctx context.Context, cfg config.Config) (*repositories, error) {
	if cfg.Storage != config.StoragePostgres {
		log.Info("🗂️ Using in-memory storage with demo data")
		return &repositories{
			audiences: repository.NewMemoryAudienceRepository(seed.Audiences()),
			campaigns: repository.NewMemoryCampaignRepository(seed.Campaigns()),
			contacts:  repository.NewMemoryContactRepository(seed.Contacts()),
			close:     func() error { return nil },
		}, nil
	}

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &repositories{
		audiences: &repository.AudienceRepository{DB: conn},
		campaigns: &repository.CampaignRepository{DB: conn},
		contacts:  &repository.ContactRepository{DB: conn},
		close:     conn.Close,
	}, nil
}

func openQueue(cfg config.Config) (queue.Queue, func() error, error) {
	if cfg.NoticeTransport == config.TransportAMQP {
		q, err := queue.DialAMQP(cfg.AMQPURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("🐇 Publishing notices to RabbitMQ")
		return q, q.Close, nil
	}
	q := queue.NewInMemoryQueue()
	if err := queue.StartNoticeLogger(q); err != nil {
		return nil, nil, err
	}
	return q, func() error { q.Wait(); return nil }, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Invalid configuration: ", err)
	}
	logFile, err := logger.Init(cfg.Log)
	if err != nil {
		log.Fatal("❌ Failed to configure logging: ", err)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatal("❌ Failed to open storage: ", err)
	}
	defer repos.close()

	q, closeQueue, err := openQueue(cfg)
	if err != nil {
		log.Fatal("❌ Failed to open notice queue: ", err)
	}
	defer closeQueue()

	notifier := &service.Notifier{Queue: q}
	campaignService := &service.CampaignService{
		CampaignRepo: repos.campaigns,
		AudienceRepo: repos.audiences,
		ContactRepo:  repos.contacts,
		Notifier:     notifier,
	}
	store := dashboard.NewStore(dashboard.Services{
		Audiences: &service.AudienceService{AudienceRepo: repos.audiences, ContactRepo: repos.contacts, Notifier: notifier},
		Campaigns: campaignService,
		Contacts:  &service.ContactService{ContactRepo: repos.contacts, Notifier: notifier},
	})
	store.IdleTTL = cfg.SessionIdleTTL
	store.MaxSessions = cfg.MaxSessions

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           controller.NewRouter(store, &controller.CampaignController{CampaignService: campaignService}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("🚀 Server running on %s", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ Server failed: ", err)
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("❌ Graceful shutdown failed")
	}
}

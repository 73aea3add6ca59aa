package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/unclebandit/audience-crm/internal/config"
	"github.com/unclebandit/audience-crm/internal/logger"
	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/queue"
	"github.com/unclebandit/audience-crm/internal/service"
)

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

	q, err := queue.DialAMQP(cfg.AMQPURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to RabbitMQ: ", err)
	}
	defer q.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobs := make(chan model.Notice, 64)
	if err := q.Subscribe(queue.NoticeTopic, enqueue(ctx, jobs)); err != nil {
		log.Fatal("❌ Failed to register consumer: ", err)
	}

	worker := service.NewWorker(jobs, logNotice)
	log.Info("👷 Worker running, waiting for notices...")
	worker.Start(ctx)

	delivered, failed := worker.Stats()
	log.WithFields(log.Fields{"delivered": delivered, "failed": failed}).Info("🛑 Worker stopped")
}

// enqueue hands consumed notices to the worker.
func enqueue(ctx context.Context, jobs chan<- model.Notice) func(payload any) error {
	return func(payload any) error {
		notice, ok := payload.(model.Notice)
		if !ok {
			log.Warnf("⚠️ Invalid payload type %T, expected notice", payload)
			return nil
		}
		select {
		case jobs <- notice:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func logNotice(n model.Notice) bool {
	entry := log.WithFields(log.Fields{"level_ui": n.Level, "created_at": n.CreatedAt})
	if n.Level == model.NoticeError {
		entry.Warn("🔔 " + n.Message)
	} else {
		entry.Info("🔔 " + n.Message)
	}
	return true
}

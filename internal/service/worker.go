package service

import (
	"context"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/unclebandit/audience-crm/internal/model"
)

// Worker drains notices from Jobs and hands each one to Deliver, retrying a
// failed delivery up to MaxAttempts times.
type Worker struct {
	Jobs        <-chan model.Notice
	Deliver     func(n model.Notice) bool
	MaxAttempts int

	delivered atomic.Int64
	failed    atomic.Int64
}

func NewWorker(jobs <-chan model.Notice, deliver func(n model.Notice) bool) *Worker {
	return &Worker{
		Jobs:        jobs,
		Deliver:     deliver,
		MaxAttempts: 3,
	}
}

// Start processes jobs until the channel closes or ctx is done.
func (w *Worker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-w.Jobs:
			if !ok {
				return
			}
			w.process(n)
		}
	}
}

func (w *Worker) process(n model.Notice) {
	for attempt := 1; attempt <= max(w.MaxAttempts, 1); attempt++ {
		if w.Deliver(n) {
			w.delivered.Add(1)
			return
		}
		log.WithFields(log.Fields{"attempt": attempt, "message": n.Message}).Warn("⚠️ Notice delivery failed")
	}
	w.failed.Add(1)
	log.WithField("message", n.Message).Error("❌ Notice dropped")
}

// Stats returns how many notices were delivered and dropped.
func (w *Worker) Stats() (delivered, failed int64) {
	return w.delivered.Load(), w.failed.Load()
}

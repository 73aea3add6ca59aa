package queue

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/unclebandit/audience-crm/internal/model"
)

// NoticeTopic carries the notifications dashboard actions produce.
const NoticeTopic = "dashboard_notices"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue delivers each message to every subscriber of its topic on
// its own goroutine, retrying failed handlers with linear backoff.
type InMemoryQueue struct {
	mu         sync.Mutex
	handlers   map[string][]func(payload any) error
	MaxRetries int
	Backoff    time.Duration
	wg         sync.WaitGroup
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(payload any) error),
		MaxRetries: 3,
		Backoff:    500 * time.Millisecond,
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Topic      string
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := append([]func(payload any) error(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		job := JobPayload{Topic: topic, Payload: payload, MaxRetries: q.MaxRetries}
		q.wg.Add(1)
		go q.processJob(handler, job)
	}
	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	defer q.wg.Done()
	for {
		err := handler(job.Payload)
		if err == nil {
			log.WithField("topic", job.Topic).Debug("Job processed successfully")
			return
		}

		job.RetryCount++
		log.WithFields(log.Fields{"topic": job.Topic, "attempt": job.RetryCount}).WithError(err).Warn("⚠️ Job failed")

		if job.RetryCount > job.MaxRetries {
			log.WithField("topic", job.Topic).Errorf("Job permanently failed after %d attempts", job.MaxRetries)
			return
		}
		time.Sleep(time.Duration(job.RetryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// Wait blocks until every published job has finished.
func (q *InMemoryQueue) Wait() {
	q.wg.Wait()
}

// StartNoticeLogger subscribes a handler that writes every notice to the log.
func StartNoticeLogger(q Queue) error {
	return q.Subscribe(NoticeTopic, func(payload any) error {
		notice, ok := payload.(model.Notice)
		if !ok {
			log.Warnf("⚠️ Invalid payload type %T, expected notice", payload)
			return nil
		}
		entry := log.WithField("level_ui", notice.Level)
		switch notice.Level {
		case model.NoticeError:
			entry.Warn("🔔 " + notice.Message)
		default:
			entry.Info("🔔 " + notice.Message)
		}
		return nil
	})
}

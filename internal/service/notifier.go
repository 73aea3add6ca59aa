package service

import (
	log "github.com/sirupsen/logrus"

	"github.com/unclebandit/audience-crm/internal/model"
	"github.com/unclebandit/audience-crm/internal/queue"
)

// Notifier publishes the notices dashboard actions produce. A nil queue only
// builds the notice.
type Notifier struct {
	Queue queue.Queue
}

func (n *Notifier) Notify(level, message string) model.Notice {
	notice := model.NewNotice(level, message)
	if n == nil || n.Queue == nil {
		return notice
	}
	if err := n.Queue.Publish(queue.NoticeTopic, notice); err != nil {
		log.WithError(err).Warn("⚠️ failed to publish notice")
	}
	return notice
}

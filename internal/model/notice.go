// internal/model/notice.go
package model

import "time"

const (
	NoticeSuccess = "success"
	NoticeInfo    = "info"
	NoticeError   = "error"
)

// Notice is a user-facing notification produced by a dashboard action.
type Notice struct {
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotice(level, message string) Notice {
	return Notice{Level: level, Message: message, CreatedAt: time.Now()}
}

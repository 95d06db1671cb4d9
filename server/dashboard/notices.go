package dashboard

import (
	"fmt"
	"time"

	"github.com/topi314/academy-dashboard/server/backend"
)

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a transient message shown to the user once.
type Notice struct {
	Level     NoticeLevel `json:"level"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"created_at"`
}

func (d *Dashboard) notice(level NoticeLevel, format string, a ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notices = append(d.notices, Notice{
		Level:     level,
		Message:   fmt.Sprintf(format, a...),
		CreatedAt: time.Now(),
	})
}

func (d *Dashboard) failed(action string, err error) {
	d.notice(NoticeError, "%s: %s", action, backend.Message(err))
}

// Notices returns the queued notices and empties the queue.
func (d *Dashboard) Notices() []Notice {
	d.mu.Lock()
	defer d.mu.Unlock()
	notices := d.notices
	d.notices = nil
	return notices
}

package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/trigger"
)

// bell rings the terminal bell where supported.
const bell = "\a"

// ConsoleAlerter prints a visible alert line for every fired alarm.
type ConsoleAlerter struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// NewConsoleAlerter writes alerts to out.
func NewConsoleAlerter(out io.Writer) *ConsoleAlerter {
	return &ConsoleAlerter{
		out: out,
		now: time.Now,
	}
}

// Alert writes "[15:04:05] Alarm: <name> - <time>" followed by a bell.
func (c *ConsoleAlerter) Alert(ctx context.Context, a *alarm.Alarm) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.out, "[%s] %s%s\n", c.now().Format(time.TimeOnly), trigger.AlertText(a), bell)
	if err != nil {
		logger.WarnKV(ctx, "Failed to write alert", "error", err)
	}
}

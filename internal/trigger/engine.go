package trigger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// MinuteLayout formats the matching minute compared against Alarm.Time.
const MinuteLayout = "15:04"

// DefaultSoundID selects the built-in alarm sound.
const DefaultSoundID = "default"

// Alerter shows the visible alert for a fired alarm.
type Alerter interface {
	Alert(ctx context.Context, a *alarm.Alarm)
}

// Notifier shows system notifications. All calls are best-effort.
type Notifier interface {
	RequestPermission(ctx context.Context) error
	HasPermission() bool
	Show(ctx context.Context, title, body string) error
}

// Player plays alarm sounds. Calls are best-effort.
type Player interface {
	Play(ctx context.Context, soundID string) error
}

// Engine applies the per-alarm trigger state machine on every scan.
type Engine struct {
	// alerter receives every firing.
	alerter Alerter
	// notifier is optional and used only when it reports permission.
	notifier Notifier
	// player is optional and used only for alarms with sound enabled.
	player Player
	// soundID is passed to the player.
	soundID string
	// now is the time source used by Run.
	now func() time.Time

	// mu guards fired.
	mu sync.Mutex
	// fired maps alarm id to the minute the alarm last fired in.
	// Absent ids are idle.
	fired map[string]string

	// effects tracks sound and notification calls still in flight.
	effects sync.WaitGroup
}

// Option configures the engine.
type Option func(*Engine)

// WithNotifier sets the notification collaborator.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithPlayer sets the sound collaborator.
func WithPlayer(p Player) Option {
	return func(e *Engine) {
		e.player = p
	}
}

// WithSoundID overrides the sound passed to the player.
func WithSoundID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.soundID = id
		}
	}
}

// WithClock overrides the time source used by Run.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine reporting firings to alerter.
func NewEngine(alerter Alerter, opts ...Option) *Engine {
	e := &Engine{
		alerter: alerter,
		soundID: DefaultSoundID,
		now:     time.Now,
		fired:   make(map[string]string),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Scan evaluates every alarm against now and returns those that fired on this call.
// Calling Scan again within the same minute fires nothing new.
func (e *Engine) Scan(ctx context.Context, now time.Time, alarms []alarm.Alarm) []alarm.Alarm {
	var (
		minute  = now.Format(MinuteLayout)
		weekday = now.Weekday().String()
		present = make(map[string]struct{}, len(alarms))
		fired   []alarm.Alarm
	)

	e.mu.Lock()

	for i := range alarms {
		a := &alarms[i]
		present[a.ID] = struct{}{}

		if !matches(a, minute, weekday) {
			delete(e.fired, a.ID)
			continue
		}

		if e.fired[a.ID] == minute {
			continue
		}

		e.fired[a.ID] = minute
		fired = append(fired, *a.Clone())
	}

	// Deleted alarms lose their state.
	for id := range e.fired {
		if _, ok := present[id]; !ok {
			delete(e.fired, id)
		}
	}

	e.mu.Unlock()

	for i := range fired {
		e.fire(ctx, &fired[i])
	}

	return fired
}

// State reports the minute an alarm last fired in and whether it is still in that state.
func (e *Engine) State(id string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	minute, ok := e.fired[id]

	return minute, ok
}

// Reset returns every alarm to idle.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	clear(e.fired)
}

// Wait blocks until all dispatched sound and notification calls have returned.
func (e *Engine) Wait() {
	e.effects.Wait()
}

// matches reports whether the alarm is due in the given minute and weekday.
func matches(a *alarm.Alarm, minute, weekday string) bool {
	return a.Enabled && a.Time == minute && a.MatchesDay(weekday)
}

// fire emits the alert and dispatches the optional side effects.
func (e *Engine) fire(ctx context.Context, a *alarm.Alarm) {
	ctx = logger.WithKV(ctx, "alarm_id", a.ID)

	logger.InfoKV(ctx, "Alarm fired", "name", a.Name, "time", a.Time, "category", a.Category)

	if e.alerter != nil {
		e.alerter.Alert(ctx, a)
	}

	if a.SoundEnabled && e.player != nil {
		soundID := e.soundID
		e.dispatch(ctx, "play sound", func() error {
			return e.player.Play(ctx, soundID)
		})
	}

	if e.notifier != nil && e.notifier.HasPermission() {
		title, body := NotificationTitle(a), NotificationBody(a)
		e.dispatch(ctx, "show notification", func() error {
			return e.notifier.Show(ctx, title, body)
		})
	}
}

// dispatch runs a side effect without blocking the scan. Errors and panics
// are logged and dropped.
func (e *Engine) dispatch(ctx context.Context, action string, fn func() error) {
	e.effects.Add(1)

	go func() {
		defer e.effects.Done()

		defer func() {
			if r := recover(); r != nil {
				logger.WarnKV(ctx, "Alarm side effect panicked", "action", action, "panic", fmt.Sprint(r))
			}
		}()

		if err := fn(); err != nil {
			logger.WarnKV(ctx, "Alarm side effect failed", "action", action, "error", err)
		}
	}()
}

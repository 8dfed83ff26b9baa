package timer

import (
	"fmt"
	"sync"
	"time"

	"github.com/pavan-8374/PillAlarm/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Payload is the self-contained data carried through a wake-up. The fire
// handler receives nothing else, so it must hold everything needed to render
// an alert after a cold start.
type Payload struct {
	AlarmID          int    `json:"alarmId"`
	MedicineName     string `json:"medicineName"`
	MedicineImageURL string `json:"medicineImageUrl,omitempty"`
}

// Handler is invoked when a registered wake-up fires. It runs on the cron
// callback goroutine and must not block it.
type Handler func(payload Payload)

// registration tracks one armed wake-up. entryID is written under the timer
// mutex before the cron job can observe it: fire takes the same mutex before
// reading, so the write is always visible by fire time.
type registration struct {
	entryID cron.EntryID
}

// Timer is the wake-up registry backed by a cron runner. Registrations are
// keyed by alarm id and fire exactly once: the entry removes itself after
// invoking the handler. Re-registering an id replaces its prior entry.
type Timer struct {
	cron    *cron.Cron
	log     logger.Logger
	exact   bool
	handler Handler
	mu      sync.Mutex // protects entries, registration ids, and handler
	entries map[uint]*registration
}

var (
	timerInstance *Timer
	once          sync.Once
)

// NewTimer creates the singleton wake-up timer. When exact is false, every
// registration is degraded to the next minute boundary (best-effort mode).
func NewTimer(log logger.Logger, exact bool) *Timer {
	once.Do(func() {
		timerInstance = newTimer(log, exact)
	})
	return timerInstance
}

func newTimer(log logger.Logger, exact bool) *Timer {
	c := cron.New(cron.WithSeconds()) // second precision for exact wake-ups
	c.Start()
	log.Info("Wake-up timer started.")
	return &Timer{
		cron:    c,
		log:     log,
		exact:   exact,
		entries: make(map[uint]*registration),
	}
}

// SetHandler installs the fire handler. Set once during wiring, before any
// registration can fire.
func (t *Timer) SetHandler(handler Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = handler
}

// Exact reports whether exact wake-up semantics are permitted.
func (t *Timer) Exact() bool {
	return t.exact
}

// formatCronSpec generates a cron spec string for a specific instant.
func formatCronSpec(at time.Time) string {
	// Seconds Minutes Hours DayOfMonth Month DayOfWeek
	return fmt.Sprintf("%d %d %d %d %d *", at.Second(), at.Minute(), at.Hour(), at.Day(), at.Month())
}

// Register arms a wake-up for the given alarm id at the given instant,
// replacing any prior registration for that id. It returns the effective
// instant, which differs from the requested one only in best-effort mode.
func (t *Timer) Register(id uint, at time.Time, payload Payload) (time.Time, error) {
	effective := at
	if !t.exact {
		// Exact delivery not permitted: round up to the minute boundary.
		// An instant already on the boundary is delivered as requested,
		// never early and never a minute late.
		if aligned := at.Truncate(time.Minute); aligned.Before(at) {
			effective = aligned.Add(time.Minute)
			t.log.Warn(fmt.Sprintf("Exact wake-ups not permitted; alarm %d degraded from %v to %v", id, at, effective))
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if prior, ok := t.entries[id]; ok {
		t.cron.Remove(prior.entryID)
		delete(t.entries, id)
	}

	reg := &registration{}
	entryID, err := t.cron.AddFunc(formatCronSpec(effective), func() {
		t.fire(id, reg, payload)
	})
	if err != nil {
		t.log.Error(fmt.Sprintf("Failed to register wake-up for alarm %d", id), err)
		return time.Time{}, fmt.Errorf("failed to register wake-up: %w", err)
	}

	reg.entryID = entryID
	t.entries[id] = reg
	t.log.Info(fmt.Sprintf("Registered wake-up for alarm %d at %v (entry %d)", id, effective, entryID))
	return effective, nil
}

// fire dispatches one wake-up and retires its cron entry. If the id was
// re-registered after this entry was armed, the newer registration is left
// alone.
func (t *Timer) fire(id uint, reg *registration, payload Payload) {
	t.mu.Lock()
	t.cron.Remove(reg.entryID)
	if current, ok := t.entries[id]; ok && current == reg {
		delete(t.entries, id)
	}
	handler := t.handler
	t.mu.Unlock()

	t.log.Info(fmt.Sprintf("Wake-up fired for alarm %d", id))
	if handler == nil {
		t.log.Warn(fmt.Sprintf("No fire handler installed; dropping wake-up for alarm %d", id))
		return
	}
	handler(payload)
}

// Deregister removes any wake-up registered for the given alarm id. It is
// safe to call for ids with no current registration.
func (t *Timer) Deregister(id uint) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if reg, ok := t.entries[id]; ok {
		t.cron.Remove(reg.entryID)
		delete(t.entries, id)
		t.log.Info(fmt.Sprintf("Deregistered wake-up for alarm %d (entry %d)", id, reg.entryID))
	}
}

// Registered reports whether the given alarm id currently has a wake-up.
func (t *Timer) Registered(id uint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.entries[id]
	return ok
}

// Stop stops the underlying cron runner, waiting for in-flight jobs. The
// mutex is released before the wait so a job mid-fire can finish.
func (t *Timer) Stop() {
	t.mu.Lock()
	c := t.cron
	t.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
		t.log.Info("Wake-up timer stopped.")
	}
}

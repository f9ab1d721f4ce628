package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Toast struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Toaster keeps the visible toasts. Each toast removes itself after the
// configured duration, independently of the others.
type Toaster struct {
	mu          sync.Mutex
	duration    time.Duration
	scheduler   Scheduler
	toasts      []Toast
	subscribers []func()
}

type ToasterOption func(*Toaster)

func WithToastDuration(d time.Duration) ToasterOption {
	return func(t *Toaster) {
		if d > 0 {
			t.duration = d
		}
	}
}

func WithToastScheduler(s Scheduler) ToasterOption {
	return func(t *Toaster) {
		if s != nil {
			t.scheduler = s
		}
	}
}

func NewToaster(opts ...ToasterOption) *Toaster {
	t := &Toaster{
		duration:  DefaultDuration,
		scheduler: DefaultScheduler,
		toasts:    []Toast{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Toaster) Duration() time.Duration {
	return t.duration
}

// Show displays a success toast and returns its id.
func (t *Toaster) Show(message string) string {
	return t.push(LevelSuccess, message)
}

// Error displays an error toast and returns its id.
func (t *Toaster) Error(message string) string {
	return t.push(LevelError, message)
}

func (t *Toaster) push(level Level, message string) string {
	toast := Toast{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	t.mu.Lock()
	t.toasts = append(t.toasts, toast)
	t.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"id":    toast.ID,
		"level": level,
	}).Debugln(message)

	t.scheduler.AfterFunc(t.duration, func() {
		t.dismiss(toast.ID)
	})

	t.notify()
	return toast.ID
}

// Dismiss removes a toast before its timer fires.
func (t *Toaster) Dismiss(id string) bool {
	return t.dismiss(id)
}

func (t *Toaster) dismiss(id string) bool {
	t.mu.Lock()
	index := slices.IndexFunc(t.toasts, func(toast Toast) bool {
		return toast.ID == id
	})
	if index < 0 {
		t.mu.Unlock()
		return false
	}
	t.toasts = slices.Delete(t.toasts, index, index+1)
	t.mu.Unlock()

	t.notify()
	return true
}

// Active returns the visible toasts, oldest first.
func (t *Toaster) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.toasts)
}

// Subscribe registers fn to be called whenever the toast set changes. fn
// may run on a timer goroutine.
func (t *Toaster) Subscribe(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers, fn)
}

func (t *Toaster) notify() {
	t.mu.Lock()
	subscribers := slices.Clone(t.subscribers)
	t.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}

package notify

import (
	"slices"
	"sync"
	"time"
)

type message struct {
	text       string
	generation uint64
	stop       func() bool
}

// Messages holds one inline validation message per channel. Each message
// clears itself after the configured duration. A newer message on the same
// channel cancels the older clear.
type Messages struct {
	mu          sync.Mutex
	duration    time.Duration
	scheduler   Scheduler
	generation  uint64
	channels    map[string]*message
	subscribers []func()
}

type MessagesOption func(*Messages)

func WithMessageDuration(d time.Duration) MessagesOption {
	return func(m *Messages) {
		if d > 0 {
			m.duration = d
		}
	}
}

func WithMessageScheduler(s Scheduler) MessagesOption {
	return func(m *Messages) {
		if s != nil {
			m.scheduler = s
		}
	}
}

func NewMessages(opts ...MessagesOption) *Messages {
	m := &Messages{
		duration:  DefaultDuration,
		scheduler: DefaultScheduler,
		channels:  map[string]*message{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Show sets the message for channel and schedules its clear.
func (m *Messages) Show(channel string, text string) {
	m.mu.Lock()
	if previous, ok := m.channels[channel]; ok && previous.stop != nil {
		previous.stop()
	}

	m.generation++
	generation := m.generation
	current := &message{text: text, generation: generation}
	m.channels[channel] = current

	current.stop = m.scheduler.AfterFunc(m.duration, func() {
		m.expire(channel, generation)
	})
	m.mu.Unlock()

	m.notify()
}

// Get returns the message currently shown on channel.
func (m *Messages) Get(channel string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.channels[channel]
	if !ok {
		return "", false
	}
	return current.text, true
}

// Clear removes the message on channel and cancels its pending clear.
func (m *Messages) Clear(channel string) {
	m.mu.Lock()
	current, ok := m.channels[channel]
	if !ok {
		m.mu.Unlock()
		return
	}
	if current.stop != nil {
		current.stop()
	}
	delete(m.channels, channel)
	m.mu.Unlock()

	m.notify()
}

// expire only clears the message it was scheduled for. A timer that fired
// just before Stop finds a newer generation and leaves it alone.
func (m *Messages) expire(channel string, generation uint64) {
	m.mu.Lock()
	current, ok := m.channels[channel]
	if !ok || current.generation != generation {
		m.mu.Unlock()
		return
	}
	delete(m.channels, channel)
	m.mu.Unlock()

	m.notify()
}

func (m *Messages) Subscribe(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

func (m *Messages) notify() {
	m.mu.Lock()
	subscribers := slices.Clone(m.subscribers)
	m.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}

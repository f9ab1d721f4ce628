package mocks

import (
	"sort"
	"sync"
	"time"
)

type scheduledTask struct {
	id      int
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// ManualScheduler runs scheduled callbacks only when Advance moves its
// clock past their deadline.
type ManualScheduler struct {
	lock   sync.Mutex
	now    time.Duration
	nextID int
	tasks  []*scheduledTask
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.nextID++
	task := &scheduledTask{id: s.nextID, at: s.now + d, fn: fn}
	s.tasks = append(s.tasks, task)

	return func() bool {
		s.lock.Lock()
		defer s.lock.Unlock()

		if task.fired || task.stopped {
			return false
		}
		task.stopped = true
		return true
	}
}

// Advance moves the clock forward and runs every callback that is due, in
// deadline order. Callbacks run without the scheduler lock held.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.lock.Lock()
	s.now += d

	var due []*scheduledTask
	for _, task := range s.tasks {
		if !task.fired && !task.stopped && task.at <= s.now {
			task.fired = true
			due = append(due, task)
		}
	}
	s.lock.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].id < due[j].id
		}
		return due[i].at < due[j].at
	})

	for _, task := range due {
		task.fn()
	}
}

// Pending counts callbacks that are neither fired nor stopped.
func (s *ManualScheduler) Pending() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	count := 0
	for _, task := range s.tasks {
		if !task.fired && !task.stopped {
			count++
		}
	}
	return count
}

package mocks

import (
	"errors"
	"sync"

	"github.com/thand-io/directory/internal/store"
)

var ErrBackendDown = errors.New("backend down")

// FlakyBackend is a memory backend whose reads and writes can be switched
// off to exercise store failures.
type FlakyBackend struct {
	*store.MemoryBackend

	lock      sync.Mutex
	failRead  bool
	failWrite bool
	Writes    int
}

func NewFlakyBackend() *FlakyBackend {
	return &FlakyBackend{MemoryBackend: store.NewMemoryBackend()}
}

func (f *FlakyBackend) FailReads(fail bool) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.failRead = fail
}

func (f *FlakyBackend) FailWrites(fail bool) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.failWrite = fail
}

func (f *FlakyBackend) WriteCount() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.Writes
}

func (f *FlakyBackend) Get(key string) (string, bool, error) {
	f.lock.Lock()
	fail := f.failRead
	f.lock.Unlock()

	if fail {
		return "", false, errors.Join(store.ErrStoreUnavailable, ErrBackendDown)
	}
	return f.MemoryBackend.Get(key)
}

func (f *FlakyBackend) Set(key string, value string) error {
	f.lock.Lock()
	fail := f.failWrite
	if !fail {
		f.Writes++
	}
	f.lock.Unlock()

	if fail {
		return errors.Join(store.ErrStoreUnavailable, ErrBackendDown)
	}
	return f.MemoryBackend.Set(key, value)
}

package repository

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/directory/internal/store"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// Repository is an ordered in-memory collection mirrored to one store key.
// A record's identity is its position, so deleting shifts every later
// record down by one.
type Repository[T any] struct {
	lock    sync.RWMutex
	key     string
	adapter *store.Adapter
	items   []T
}

func New[T any](adapter *store.Adapter, key string) *Repository[T] {
	return &Repository[T]{
		key:     key,
		adapter: adapter,
		items:   []T{},
	}
}

func (r *Repository[T]) Key() string {
	return r.key
}

// Load replaces the in-memory collection with the stored one. The
// repository is always usable afterwards; on error it is empty.
func (r *Repository[T]) Load() error {
	items, err := store.LoadCollection[T](r.adapter, r.key)

	r.lock.Lock()
	r.items = items
	r.lock.Unlock()

	logrus.WithFields(logrus.Fields{
		"key":   r.key,
		"count": len(items),
	}).Debugln("Loaded repository")

	return err
}

// List returns a copy of the collection in insertion order.
func (r *Repository[T]) List() []T {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return slices.Clone(r.items)
}

func (r *Repository[T]) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.items)
}

func (r *Repository[T]) Get(index int) (T, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var zero T
	if !r.inRange(index) {
		return zero, r.outOfRange(index)
	}
	return r.items[index], nil
}

// Create appends the record and returns its index.
func (r *Repository[T]) Create(record T) int {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.items = append(r.items, record)
	return len(r.items) - 1
}

func (r *Repository[T]) UpdateAt(index int, record T) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if !r.inRange(index) {
		return r.outOfRange(index)
	}
	r.items[index] = record
	return nil
}

// Modify applies fn to the record at index in place.
func (r *Repository[T]) Modify(index int, fn func(*T)) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if !r.inRange(index) {
		return r.outOfRange(index)
	}
	fn(&r.items[index])
	return nil
}

func (r *Repository[T]) DeleteAt(index int) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if !r.inRange(index) {
		return r.outOfRange(index)
	}
	r.items = slices.Delete(r.items, index, index+1)
	return nil
}

// Replace swaps the whole collection, used by imports.
func (r *Repository[T]) Replace(items []T) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if items == nil {
		items = []T{}
	}
	r.items = slices.Clone(items)
}

// Persist writes the whole collection, overwriting whatever was stored.
func (r *Repository[T]) Persist() error {
	items := r.List()

	if err := store.SaveCollection(r.adapter, r.key, items); err != nil {
		logrus.WithError(err).WithField("key", r.key).Errorln("Failed to persist repository")
		return err
	}
	return nil
}

func (r *Repository[T]) inRange(index int) bool {
	return index >= 0 && index < len(r.items)
}

func (r *Repository[T]) outOfRange(index int) error {
	return fmt.Errorf("%w: %s[%d] (length %d)", ErrIndexOutOfRange, r.key, index, len(r.items))
}

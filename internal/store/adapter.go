package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/directory/internal/models"
)

// ErrCorruptCollection is returned when a stored collection cannot be
// decoded. The collection is then treated as empty.
var ErrCorruptCollection = errors.New("stored collection is corrupt")

// Adapter serializes whole collections to and from a Backend. Every write
// replaces the previous value under the key.
type Adapter struct {
	backend Backend
}

func NewAdapter(backend Backend) *Adapter {
	return &Adapter{backend: backend}
}

func (a *Adapter) Backend() Backend {
	return a.backend
}

// Clear removes all three collections.
func (a *Adapter) Clear() error {
	var errs []error
	for _, key := range Keys {
		if err := a.backend.Remove(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *Adapter) Close() error {
	return a.backend.Close()
}

// LoadCollection reads the collection stored under key. An absent key is an
// empty collection. The returned slice is never nil.
func LoadCollection[T any](a *Adapter, key string) ([]T, error) {
	items := []T{}

	raw, ok, err := a.backend.Get(key)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Errorln("Failed to read collection")
		return items, err
	}

	if !ok || len(raw) == 0 {
		logrus.WithField("key", key).Debugln("Collection not found, starting empty")
		return items, nil
	}

	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logrus.WithError(err).WithField("key", key).Warnln("Failed to decode collection, starting empty")
		return []T{}, fmt.Errorf("%w: %s: %w", ErrCorruptCollection, key, err)
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

// SaveCollection serializes the full collection and writes it under key.
func SaveCollection[T any](a *Adapter, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	logrus.WithFields(logrus.Fields{
		"key":   key,
		"count": len(items),
	}).Debugln("Persisting collection")

	return a.backend.Set(key, string(data))
}

// Snapshot is every collection at once, used for export and import.
type Snapshot struct {
	Users  []models.User  `json:"users" yaml:"users"`
	Groups []models.Group `json:"groups" yaml:"groups"`
	Roles  []models.Role  `json:"roles" yaml:"roles"`
}

func (a *Adapter) Snapshot() (*Snapshot, error) {
	var errs []error

	users, err := LoadCollection[models.User](a, KeyUsers)
	errs = append(errs, err)

	groups, err := LoadCollection[models.Group](a, KeyGroups)
	errs = append(errs, err)

	roles, err := LoadCollection[models.Role](a, KeyRoles)
	errs = append(errs, err)

	return &Snapshot{
		Users:  users,
		Groups: groups,
		Roles:  roles,
	}, errors.Join(errs...)
}

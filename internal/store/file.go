package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrCorruptStore is returned when the store file exists but cannot be
// parsed.
var ErrCorruptStore = errors.New("store file is corrupt")

// fileDocument is the on-disk layout of a FileBackend. Each entry holds the
// serialized text of one key.
type fileDocument struct {
	Version   string            `yaml:"version"`
	Timestamp time.Time         `yaml:"timestamp"`
	Entries   map[string]string `yaml:"entries"`
}

// FileBackend stores every key in a single YAML document. The file is read
// on every Get so writes from another process are picked up; the last
// writer of a key wins.
type FileBackend struct {
	lock sync.Mutex
	path string
}

func NewFileBackend(path string) (*FileBackend, error) {
	dir := filepath.Dir(path)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	return &FileBackend{path: path}, nil
}

func (f *FileBackend) Path() string {
	return f.path
}

func (f *FileBackend) Get(key string) (string, bool, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	doc, err := f.load()
	if err != nil {
		return "", false, unavailable("get", key, err)
	}

	value, ok := doc.Entries[key]
	return value, ok, nil
}

func (f *FileBackend) Set(key string, value string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	doc, err := f.loadForWrite()
	if err != nil {
		return unavailable("set", key, err)
	}

	doc.Entries[key] = value

	if err := f.commit(doc); err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

func (f *FileBackend) Remove(key string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	doc, err := f.loadForWrite()
	if err != nil {
		return unavailable("remove", key, err)
	}

	if _, ok := doc.Entries[key]; !ok {
		return nil
	}
	delete(doc.Entries, key)

	if err := f.commit(doc); err != nil {
		return unavailable("remove", key, err)
	}
	return nil
}

func (f *FileBackend) Close() error {
	return nil
}

func (f *FileBackend) load() (*fileDocument, error) {

	logrus.WithField("path", f.path).Debugln("Loading store file")

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return newFileDocument(), nil
	} else if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return newFileDocument(), nil
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		logrus.WithError(err).Errorf("Failed to parse store file %s", f.path)
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptStore, f.path, err)
	}

	if doc.Entries == nil {
		doc.Entries = make(map[string]string)
	}

	return &doc, nil
}

// loadForWrite moves a damaged file aside before a write replaces it, so
// the collections it held can still be recovered by hand.
func (f *FileBackend) loadForWrite() (*fileDocument, error) {
	doc, err := f.load()
	if !errors.Is(err, ErrCorruptStore) {
		return doc, err
	}

	backup := fmt.Sprintf("%s.corrupt-%d", f.path, time.Now().UTC().UnixNano())
	if err := os.Rename(f.path, backup); err != nil {
		return nil, fmt.Errorf("failed to back up damaged store file: %w", err)
	}

	logrus.WithField("backup", backup).Warnf("Moved damaged store file %s aside", f.path)

	return newFileDocument(), nil
}

func (f *FileBackend) commit(doc *fileDocument) error {

	// Only allow read/write access to the owner
	file, err := os.OpenFile(f.path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	// Truncate the file to ensure clean write
	if err := file.Truncate(0); err != nil {
		return err
	}

	if _, err := file.Seek(0, 0); err != nil {
		return err
	}

	doc.Timestamp = time.Now().UTC()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()

	return encoder.Encode(doc)
}

func newFileDocument() *fileDocument {
	return &fileDocument{
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Entries:   make(map[string]string),
	}
}

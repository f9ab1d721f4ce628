package config

import (
	"time"

	"github.com/thand-io/directory/internal/common"
	"github.com/thand-io/directory/internal/notify"
	"github.com/thand-io/directory/internal/store"
)

type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`

	file     string
	activity *ActivityLog
}

type StoreConfig struct {
	Backend string `mapstructure:"backend" default:"file"`
	Path    string `mapstructure:"path" default:"~/.config/thand/directory.yaml"`
}

type UIConfig struct {
	MessageDuration time.Duration `mapstructure:"message_duration" default:"3s"`
	ToastDuration   time.Duration `mapstructure:"toast_duration" default:"3s"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" default:"info"`
	Format string `mapstructure:"format" default:"text"`
	Output string `mapstructure:"output"`
}

// File is the config file that was read, if any.
func (c *Config) File() string {
	return c.file
}

func (c *Config) GetStorePath() string {
	return expandHome(c.Store.Path)
}

// Activity returns the in-memory log of recent entries. It is nil until
// Load has configured logging.
func (c *Config) Activity() *ActivityLog {
	return c.activity
}

// OpenStore opens the configured backend.
func (c *Config) OpenStore() (*store.Adapter, error) {
	backend, err := store.Open(c.Store.Backend, c.GetStorePath())
	if err != nil {
		return nil, err
	}
	return store.NewAdapter(backend), nil
}

func (c *Config) NewToaster() *notify.Toaster {
	return notify.NewToaster(notify.WithToastDuration(c.UI.ToastDuration))
}

func (c *Config) NewMessages() *notify.Messages {
	return notify.NewMessages(notify.WithMessageDuration(c.UI.MessageDuration))
}

func expandHome(path string) string {
	return common.ExpandHome(path)
}

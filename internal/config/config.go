package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const EnvPrefix = "DIRECTORY"

func DefaultConfig() *Config {

	v := viper.New()

	// Set default values
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("error unmarshaling default config: %v", err)
	}

	return &config
}

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	if err := setupViperConfig(v, configFile); err != nil {
		return nil, err
	}

	bindEnvironmentVariables(v)

	config, err := readAndUnmarshalConfig(v)
	if err != nil {
		return nil, err
	}

	if err := setupLogging(config, v); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile loads the .env file if it exists
func loadEnvFile() error {
	if err := gotenv.Load(); err != nil {
		// .env file not found, that's okay - continue with other sources
		if !os.IsNotExist(err) {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}
	return nil
}

// setupViperConfig configures viper with file paths and defaults
func setupViperConfig(v *viper.Viper, configFile string) error {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/thand/directory")

	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
	}

	setupHomeConfigPath(v)

	// Set default values
	setDefaults(v)

	// Set environment variable settings
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	return nil
}

// setupHomeConfigPath adds ~/.config/thand/directory when a home directory
// is known
func setupHomeConfigPath(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil || len(home) == 0 {
		return
	}

	v.AddConfigPath(filepath.Join(home, ".config", "thand", "directory"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", "file")
	v.SetDefault("store.path", "~/.config/thand/directory.yaml")

	v.SetDefault("ui.message_duration", "3s")
	v.SetDefault("ui.toast_duration", "3s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "")
}

// bindEnvironmentVariables binds all environment variables to viper
func bindEnvironmentVariables(v *viper.Viper) {
	v.BindEnv("store.backend", "DIRECTORY_STORE_BACKEND")
	v.BindEnv("store.path", "DIRECTORY_STORE_PATH")

	v.BindEnv("ui.message_duration", "DIRECTORY_UI_MESSAGE_DURATION")
	v.BindEnv("ui.toast_duration", "DIRECTORY_UI_TOAST_DURATION")

	bindLoggingEnvVars(v)
}

// bindLoggingEnvVars binds logging configuration environment variables
func bindLoggingEnvVars(v *viper.Viper) {
	v.BindEnv("logging.level", "DIRECTORY_LOGGING_LEVEL")
	v.BindEnv("logging.format", "DIRECTORY_LOGGING_FORMAT")
	v.BindEnv("logging.output", "DIRECTORY_LOGGING_OUTPUT")
}

// readAndUnmarshalConfig reads the configuration file and unmarshals it
func readAndUnmarshalConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and environment variables
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if used := v.ConfigFileUsed(); len(used) > 0 {
		config.file = used
	}

	return &config, nil
}

// installActivity swaps any earlier ActivityLog on logger for activity and
// leaves other hooks in place.
func installActivity(logger *logrus.Logger, activity *ActivityLog) {
	hooks := make(logrus.LevelHooks)
	for level, levelHooks := range logger.Hooks {
		for _, hook := range levelHooks {
			if _, ok := hook.(*ActivityLog); !ok {
				hooks[level] = append(hooks[level], hook)
			}
		}
	}
	hooks.Add(activity)
	logger.ReplaceHooks(hooks)
}

// setupLogging configures the logging system based on the config
func setupLogging(config *Config, v *viper.Viper) error {
	logrusLevel, err := logrus.ParseLevel(config.Logging.Level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	logrus.SetLevel(logrusLevel)
	config.activity = NewActivityLog(DefaultActivitySize)
	installActivity(logrus.StandardLogger(), config.activity)

	switch strings.ToLower(config.Logging.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		logrus.WithFields(logrus.Fields{
			"format": config.Logging.Format,
		}).Warn("Unknown log format")
	}

	if len(config.Logging.Output) > 0 {
		output, err := openLogOutput(config.Logging.Output)
		if err != nil {
			return err
		}
		logrus.SetOutput(output)
	}

	// Dump out the config settings if in debug mode
	if logrusLevel >= logrus.DebugLevel {
		for key, value := range v.AllSettings() {
			logrus.Debugf("Config '%s': %v\n", key, value)
		}
	}

	return nil
}

func openLogOutput(path string) (io.Writer, error) {
	path = expandHome(path)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output: %w", err)
	}

	return file, nil
}

// QuietTerminal stops log lines from reaching the terminal while a full
// screen UI owns it. A configured output file keeps receiving them.
func (c *Config) QuietTerminal() {
	if len(c.Logging.Output) == 0 {
		logrus.SetOutput(io.Discard)
	}
}

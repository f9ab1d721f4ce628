package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ReadDataToInterface decodes either JSON or YAML into T. YAML is converted
// to JSON first so the json struct tags are the single source of truth.
func ReadDataToInterface[T any](data []byte, _ T) (*T, error) {

	var item T

	// remove all starting whitespace including newlines to figure out
	// what the first character is
	data = bytes.TrimLeftFunc(data, unicode.IsSpace)

	if len(data) == 0 {
		return nil, fmt.Errorf("no data provided")

	} else if data[0] == '{' || data[0] == '[' {
		logrus.Debugln("Data format detected: JSON")
	} else {
		var yamlData any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			logrus.WithError(err).Errorln("Failed to unmarshal YAML")
			return nil, err
		}

		if jsonData, err := json.Marshal(yamlData); err != nil {
			logrus.WithError(err).Errorln("Failed to convert YAML to JSON")
			return nil, err
		} else {
			data = jsonData
		}
	}

	if err := json.Unmarshal(data, &item); err != nil {
		logrus.WithError(err).Errorln("Failed to unmarshal JSON data")
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}

	return &item, nil
}

// ExpandHome replaces a leading ~ with the current user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		logrus.WithError(err).Warnln("Failed to resolve home directory")
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

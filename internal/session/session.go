// Package session reads the optional YAML sidecar file describing a capture.
package session

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Session describes a capture: its channel names in capture order, the
// samplerate and default decoder settings. All fields are optional.
type Session struct {
	Channels   []string `yaml:"channels"`
	Samplerate int      `yaml:"samplerate"`
	Protocol   string   `yaml:"protocol"`
	Mode       string   `yaml:"mode"`
}

// Load reads and parses a session file.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	return &sess, nil
}

// LoadSidecar loads the session file configured in opts or, if none is set,
// the "<input>.yaml" sidecar next to the capture file when it exists.
// Returns nil without error when no session file is available.
func LoadSidecar(explicit, inputFile string) (*Session, error) {
	if explicit != "" {
		return Load(explicit)
	}

	sidecar := inputFile + ".yaml"
	if _, err := os.Stat(sidecar); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("checking session sidecar %s: %w", sidecar, err)
	}
	return Load(sidecar)
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const exampleHeader = `# todoterm configuration file
# Every value can be overridden with TODOTERM_* environment variables
# (e.g. TODOTERM_STORE_PATH) or command line flags.

`

type fileConfig struct {
	Store struct {
		Path string `toml:"path"`
	} `toml:"store"`
	Log  LogConfig    `toml:"log"`
	Keys *Keybindings `toml:"keys"`
}

// ExampleConfig renders a config file holding every option at its default.
func ExampleConfig(storePath string) ([]byte, error) {
	var fc fileConfig
	fc.Store.Path = storePath
	fc.Log = LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat}
	fc.Keys = DefaultKeybindings()

	var buf bytes.Buffer
	buf.WriteString(exampleHeader)
	if err := toml.NewEncoder(&buf).Encode(fc); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ErrConfigExists is returned by WriteExample when the file exists and
// overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

// WriteExample writes ExampleConfig to path, creating parent directories.
func WriteExample(path, storePath string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	data, err := ExampleConfig(storePath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

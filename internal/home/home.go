// Package home locates the per-user cardscan directory and decides which
// config and .env files a command reads.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is created under the user's home directory.
	DefaultDirName = ".cardscan"
	ConfigFileName = "config.yaml"

	// EnvFileName holds secrets such as OPENAI_API_KEY.
	EnvFileName = ".env"
)

// Dir is the cardscan home directory, ~/.cardscan unless overridden.
type Dir struct {
	root string
}

// New returns the Dir at path, or ~/.cardscan when path is empty.
func New(path string) (*Dir, error) {
	if path != "" {
		return &Dir{root: path}, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("locate user home: %w", err)
	}
	return &Dir{root: filepath.Join(userHome, DefaultDirName)}, nil
}

func (d *Dir) Path() string { return d.root }
func (d *Dir) ConfigPath() string { return filepath.Join(d.root, ConfigFileName) }
func (d *Dir) EnvPath() string { return filepath.Join(d.root, EnvFileName) }

// EnsureExists creates the directory and its parents.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", d.root, err)
	}
	return nil
}

// ConfigFile picks the config file to load. An explicit path always wins,
// then ./config.yaml, then the home config. Empty means defaults only.
func (d *Dir) ConfigFile(explicit string) string {
	switch {
	case explicit != "":
		return explicit
	case isFile(ConfigFileName):
		return ConfigFileName
	case isFile(d.ConfigPath()):
		return d.ConfigPath()
	}
	return ""
}

// EnvFiles lists .env files in load order. Earlier files win because
// loading never overrides a variable that is already set.
func (d *Dir) EnvFiles() []string {
	return []string{EnvFileName, d.EnvPath()}
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

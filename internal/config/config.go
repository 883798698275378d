// Package config manages swapsync configuration and the .swapsync directory
// structure. It handles loading, saving, and initializing the per-project
// configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	SwapsyncDir  = ".swapsync"
	ConfigFile   = "config"
	CacheFile    = "cache.json"
	JournalFile  = "swapsync.db"
	MetadataFile = "metadata.json"
)

// Config represents the swapsync configuration for one project checkout.
type Config struct {
	// MetadataPath is the git-tracked project metadata document holding the
	// projectSwap section. Relative paths resolve against the project root.
	MetadataPath string `toml:"metadata_path"`

	// ProjectURL and ProjectName identify the repository this checkout
	// belongs to. Name matters on its own: remote-only repositories may have
	// no URL discoverable locally.
	ProjectURL  string `toml:"project_url"`
	ProjectName string `toml:"project_name"`

	// User is the identity written into completion records.
	User string `toml:"user"`

	path string // path to .swapsync directory
}

// FindRoot finds the .swapsync directory by walking up from the current
// directory.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		p := filepath.Join(dir, SwapsyncDir)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not a swapsync project (or any parent up to root)")
		}
		dir = parent
	}
}

// Load loads the configuration from the .swapsync directory.
func Load() (*Config, error) {
	p, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return LoadFrom(p)
}

// LoadFrom loads the configuration from an explicit .swapsync directory.
func LoadFrom(swapsyncPath string) (*Config, error) {
	configPath := filepath.Join(swapsyncPath, ConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.path = swapsyncPath
	return &cfg, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	configPath := filepath.Join(c.path, ConfigFile)
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// Path returns the path to the .swapsync directory.
func (c *Config) Path() string {
	return c.path
}

// CachePath returns the path to the local swap cache file. The cache lives
// inside .swapsync and is never tracked by git.
func (c *Config) CachePath() string {
	return filepath.Join(c.path, CacheFile)
}

// JournalPath returns the path to the decision journal database.
func (c *Config) JournalPath() string {
	return filepath.Join(c.path, JournalFile)
}

// MetadataDocPath resolves the metadata document path against the project
// root (the parent of .swapsync).
func (c *Config) MetadataDocPath() string {
	if filepath.IsAbs(c.MetadataPath) {
		return c.MetadataPath
	}
	name := c.MetadataPath
	if name == "" {
		name = MetadataFile
	}
	return filepath.Join(filepath.Dir(c.path), name)
}

// Initialize creates a new .swapsync directory with initial configuration.
func Initialize(projectURL, projectName, user string) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	swapsyncPath := filepath.Join(cwd, SwapsyncDir)

	if _, err := os.Stat(swapsyncPath); err == nil {
		return nil, fmt.Errorf("swapsync project already exists")
	}

	if err := os.MkdirAll(swapsyncPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .swapsync directory: %w", err)
	}

	cfg := &Config{
		MetadataPath: MetadataFile,
		ProjectURL:   projectURL,
		ProjectName:  projectName,
		User:         user,
		path:         swapsyncPath,
	}
	if err := cfg.Save(); err != nil {
		return nil, err
	}
	return cfg, nil
}

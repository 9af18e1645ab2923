package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the content of cs2-posts.yml.
type Config struct {
	PostsDir        string `yaml:"posts_dir"`
	ImagesDir       string `yaml:"images_dir"`
	WorkspacePrefix string `yaml:"workspace_prefix"`

	// BaseDir anchors relative directories. It is the config file's
	// directory and is never written out.
	BaseDir string `yaml:"-"`
}

// Default returns the stock layout anchored at baseDir.
func Default(baseDir string) *Config {
	return &Config{
		PostsDir:        DefaultPostsDir,
		ImagesDir:       DefaultImagesDir,
		WorkspacePrefix: DefaultWorkspacePrefix,
		BaseDir:         baseDir,
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// keys left out of the file keep their default values.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	cfg := Default(filepath.Dir(abs))

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required fields are present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.PostsDir) == "" {
		return fmt.Errorf("posts_dir is required")
	}
	if strings.TrimSpace(c.ImagesDir) == "" {
		return fmt.Errorf("images_dir is required")
	}
	if strings.ContainsAny(c.WorkspacePrefix, `/\`) {
		return fmt.Errorf("workspace_prefix cannot contain path separators")
	}
	return nil
}

// PostsPath is the absolute directory of the per-map data files.
func (c *Config) PostsPath() string { return c.resolve(c.PostsDir) }

// ImagesPath is the absolute directory holding one folder per map.
func (c *Config) ImagesPath() string { return c.resolve(c.ImagesDir) }

func (c *Config) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(c.BaseDir, dir)
}

// Save writes the config to the given path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

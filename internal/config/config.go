package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML) for the API server.
type Config struct {
	// ArchiveDir is the directory the server looks up .bsx archives in.
	ArchiveDir string     `yaml:"archive_dir"`
	Port       int        `yaml:"port"`
	CORS       CORSConfig `yaml:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		ArchiveDir: "./archives",
		Port:       8080,
	}
}

// Load reads, overrides, and validates a config file. With an empty path the
// defaults are used (env overrides still apply).
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads config and applies environment overrides, but does not
// validate it. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, err
		}
	}
	c.applyEnvOverrides()
	return c, nil
}

// applyEnvOverrides lets deployment env vars win over the file, matching how
// the server is pointed at a different archive directory in containers.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("BSX_ARCHIVE_DIR"); dir != "" {
		c.ArchiveDir = dir
	}
	if port := os.Getenv("API_PORT"); port != "" {
		if parsed, err := strconv.Atoi(port); err == nil {
			c.Port = parsed
		}
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.ArchiveDir == "" {
		return errors.New("archive_dir is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

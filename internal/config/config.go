// Package config loads and validates arbor.json project configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/arbor-dev/arbor/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "arbor.json"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultRoutes is the default routes directory.
	DefaultRoutes = "app/routes"

	// DefaultOutput is the default build output directory.
	DefaultOutput = "dist"
)

// Config represents the complete arbor.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Paths contains path configuration for project directories.
	Paths PathsConfig `json:"paths,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// Build contains build configuration.
	Build BuildConfig `json:"build,omitempty"`

	// Publish contains partial deployment configuration.
	Publish PublishConfig `json:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PathsConfig contains path configuration for project directories.
type PathsConfig struct {
	// Routes is the path to the routes directory.
	Routes string `json:"routes,omitempty"`

	// Public is the path to the public static files directory.
	Public string `json:"public,omitempty"`
}

// DevConfig contains development server configuration.
type DevConfig struct {
	// Port is the dev server port.
	Port int `json:"port,omitempty"`

	// Host is the dev server host.
	Host string `json:"host,omitempty"`

	// HotReload enables the websocket reload channel.
	HotReload bool `json:"hotReload"`

	// Ignore lists extra watcher ignore patterns (globs).
	Ignore []string `json:"ignore,omitempty"`
}

// BuildConfig contains build configuration.
type BuildConfig struct {
	// Output is the directory partial artifacts are written to.
	Output string `json:"output,omitempty"`
}

// PublishConfig contains partial deployment configuration.
type PublishConfig struct {
	// Bucket is the S3 bucket partials are uploaded to.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the key prefix within the bucket.
	Prefix string `json:"prefix,omitempty"`

	// Region overrides the SDK's resolved AWS region.
	Region string `json:"region,omitempty"`
}

// New creates a configuration with defaults.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Paths: PathsConfig{
			Routes: DefaultRoutes,
			Public: "public",
		},
		Dev: DevConfig{
			Port:      DefaultPort,
			Host:      DefaultHost,
			HotReload: true,
		},
		Build: BuildConfig{
			Output: DefaultOutput,
		},
	}
}

// Load reads configuration from the specified directory. It looks for
// arbor.json in the directory, then applies .env and environment
// overrides.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C101").
				WithPath(filepath.Dir(path)).
				WithSuggestion("Create arbor.json in the project root")
		}
		return nil, errors.New("C102").WithPath(path).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C102").
			WithPath(path).
			Wrap(err).
			WithSuggestion("Check that arbor.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	cfg.applyEnv(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("C102").WithPath(path).Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C102").WithPath(path).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Paths.Routes == "" {
		c.Paths.Routes = DefaultRoutes
	}
	if c.Paths.Public == "" {
		c.Paths.Public = "public"
	}
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Build.Output == "" {
		c.Build.Output = DefaultOutput
	}
}

// applyEnv loads .env from the project directory, then applies ARBOR_*
// environment overrides. Environment beats arbor.json; .env never beats
// variables already set in the process environment.
func (c *Config) applyEnv(dir string) {
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	if v := os.Getenv("ARBOR_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Dev.Port = port
		}
	}
	if v := os.Getenv("ARBOR_HOST"); v != "" {
		c.Dev.Host = v
	}
	if v := os.Getenv("ARBOR_ROUTES"); v != "" {
		c.Paths.Routes = v
	}
	if v := os.Getenv("ARBOR_PUBLISH_BUCKET"); v != "" {
		c.Publish.Bucket = v
	}
}

// Validate checks configuration values.
func (c *Config) Validate() error {
	if c.Dev.Port < 1 || c.Dev.Port > 65535 {
		return errors.New("C103").
			WithDetail("dev.port must be between 1 and 65535").
			WithPath(c.configPath)
	}
	return nil
}

// DevAddress returns the host:port the dev server binds to.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}

// RoutesPath returns the absolute path to the routes directory.
func (c *Config) RoutesPath() string {
	return filepath.Join(c.Dir(), c.Paths.Routes)
}

// OutputPath returns the absolute path to the build output directory.
func (c *Config) OutputPath() string {
	return filepath.Join(c.Dir(), c.Build.Output)
}

// Exists reports whether an arbor.json exists in the directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir looking for an arbor.json.
func FindProjectRoot(startDir string) (string, error) {
	dir := startDir
	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("C101").WithPath(startDir)
		}
		dir = parent
	}
}

// LoadFromWorkingDir locates the project root from the current working
// directory and loads its configuration.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Newf(errors.CategoryConfig, "cannot determine working directory: %v", err)
	}
	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

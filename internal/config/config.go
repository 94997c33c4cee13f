package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vango-dev/uishka/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "uishka.json"

	// DefaultPrefix is the class-name prefix widgets are mounted by.
	DefaultPrefix = "uishka"

	// DefaultLoadingLabel is the text a Button shows while loading.
	DefaultLoadingLabel = "Loading..."

	// DefaultInspectPort is the default inspector server port.
	DefaultInspectPort = 7070

	// DefaultInspectHost is the default inspector server host.
	DefaultInspectHost = "localhost"

	// DefaultNamespace is the default metrics namespace and tracer name.
	DefaultNamespace = "uishka"

	// DefaultSnapshotDir is where snapshots are written when no bucket is set.
	DefaultSnapshotDir = "snapshots"

	// DefaultSnapshotRegion is the S3 region used when none is configured.
	DefaultSnapshotRegion = "us-east-1"
)

// Log levels and formats accepted in the log section.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the complete uishka.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Prefix is the class-name prefix used to find widgets ("uishka" → .uishka-btn).
	Prefix string `json:"prefix,omitempty"`

	// Button contains Button widget settings.
	Button ButtonConfig `json:"button,omitempty"`

	// Log contains logging settings.
	Log LogConfig `json:"log,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Inspect contains inspector server settings.
	Inspect InspectConfig `json:"inspect,omitempty"`

	// Snapshot contains snapshot store settings.
	Snapshot SnapshotConfig `json:"snapshot,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ButtonConfig contains Button widget settings.
type ButtonConfig struct {
	// LoadingLabel replaces the button text while Loading is active.
	LoadingLabel string `json:"loadingLabel,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled turns metric collection on.
	Enabled bool `json:"enabled"`

	// Namespace is the metric namespace.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled turns span creation on.
	Enabled bool `json:"enabled"`

	// TracerName is the name passed to the global tracer provider.
	TracerName string `json:"tracerName,omitempty"`
}

// InspectConfig contains inspector server settings.
type InspectConfig struct {
	// Port is the port the inspector listens on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`
}

// SnapshotConfig selects where snapshots are stored. A non-empty Bucket
// selects S3; otherwise snapshots go to Dir.
type SnapshotConfig struct {
	// Dir is the local snapshot directory.
	Dir string `json:"dir,omitempty"`

	// Bucket is the S3 bucket name.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to every S3 object key (e.g., "snapshots/").
	Prefix string `json:"prefix,omitempty"`

	// Region is the S3 region.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint (MinIO, localstack).
	Endpoint string `json:"endpoint,omitempty"`

	// PathStyle addresses buckets as endpoint/bucket/key.
	PathStyle bool `json:"pathStyle,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Prefix: DefaultPrefix,
		Button: ButtonConfig{
			LoadingLabel: DefaultLoadingLabel,
		},
		Log: LogConfig{
			Level:  LevelInfo,
			Format: FormatText,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultNamespace,
		},
		Inspect: InspectConfig{
			Port: DefaultInspectPort,
			Host: DefaultInspectHost,
		},
		Snapshot: SnapshotConfig{
			Dir:    DefaultSnapshotDir,
			Region: DefaultSnapshotRegion,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for uishka.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithSubject(path).
				WithDetail("No uishka.json found in " + filepath.Dir(path)).
				WithSuggestion("Create uishka.json or run without --config to use defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse uishka.json: " + err.Error()).
			WithSuggestion("Check that uishka.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

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
		return errors.New("E120").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
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
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.Button.LoadingLabel == "" {
		c.Button.LoadingLabel = DefaultLoadingLabel
	}
	if c.Log.Level == "" {
		c.Log.Level = LevelInfo
	}
	if c.Log.Format == "" {
		c.Log.Format = FormatText
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}
	if c.Inspect.Port == 0 {
		c.Inspect.Port = DefaultInspectPort
	}
	if c.Inspect.Host == "" {
		c.Inspect.Host = DefaultInspectHost
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}
	if c.Snapshot.Region == "" {
		c.Snapshot.Region = DefaultSnapshotRegion
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return errors.New("E122").
			WithSubject("log.level").
			WithDetail("log.level must be one of debug, info, warn, error; got " + c.Log.Level)
	}
	switch c.Log.Format {
	case FormatText, FormatJSON:
	default:
		return errors.New("E122").
			WithSubject("log.format").
			WithDetail("log.format must be text or json; got " + c.Log.Format)
	}
	if c.Inspect.Port < 0 || c.Inspect.Port > 65535 {
		return errors.New("E122").
			WithSubject("inspect.port").
			WithDetail("Port must be between 0 and 65535")
	}
	return nil
}

// InspectAddress returns the address string for the inspector server.
func (c *Config) InspectAddress() string {
	return net.JoinHostPort(c.Inspect.Host, strconv.Itoa(c.Inspect.Port))
}

// ButtonClass returns the class name Buttons are mounted by.
func (c *Config) ButtonClass() string {
	return c.Prefix + "-btn"
}

// CardClass returns the class name Cards are mounted by.
func (c *Config) CardClass() string {
	return c.Prefix + "-card"
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing uishka.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E121").
				WithDetail("No uishka.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadOrDefault loads uishka.json from dir or one of its parents, falling back to
// defaults when none exists. Malformed files are still reported.
func LoadOrDefault(dir string) (*Config, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		return New(), nil
	}
	return Load(root)
}

// Package config resolves arthurchat settings from defaults, an optional config
// file, .env files, ARTHUR_ environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"arthurchat/internal/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable arthurchat reads.
const EnvPrefix = "ARTHUR"

// AppDirName is the directory under the user config dir holding arthurchat files.
const AppDirName = "arthurchat"

// Setting keys.
const (
	KeyStorageBackend = "storage.backend"
	KeyStorageDir     = "storage.dir"
	KeyBackendURL     = "backend.url"
	KeyBackendTimeout = "backend.timeout"
	KeyDownloadDir    = "download.dir"
	KeyLogLevel       = "log.level"
	KeyLogFile        = "log.file"
	KeyNoColor        = "ui.no_color"
)

// Config is the resolved application configuration.
type Config struct {
	StorageBackend string
	StorageDir     string
	BackendURL     string
	BackendTimeout time.Duration
	DownloadDir    string
	LogLevel       string
	LogFile        string
	NoColor        bool

	// Sources lists the files that contributed settings, in load order.
	Sources []string
}

// Options control where Load looks for files.
type Options struct {
	// ConfigFile is an explicit config file. When empty, arthur.yaml is searched
	// in the working directory and the config directory.
	ConfigFile string
	// ConfigDir overrides the user config directory.
	ConfigDir string
	// WorkDir overrides the working directory used for the local .env and arthur.yaml.
	WorkDir string
	// TestMode skips every file source so only defaults, env and flags apply.
	TestMode bool
}

// New returns a viper instance with arthurchat defaults and env binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v, "")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the default of every setting. configDir roots the default storage dir.
func SetDefaults(v *viper.Viper, configDir string) {
	v.SetDefault(KeyStorageBackend, storage.BackendFile)
	v.SetDefault(KeyStorageDir, filepath.Join(configDir, "data"))
	v.SetDefault(KeyBackendURL, "http://localhost:8000/chat")
	v.SetDefault(KeyBackendTimeout, "0s")
	v.SetDefault(KeyDownloadDir, ".")
	v.SetDefault(KeyLogLevel, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyNoColor, false)
}

// DefaultConfigDir returns the user config directory for arthurchat.
func DefaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

// Load reads all file sources into v and returns the resolved configuration.
// Precedence, highest first: flags bound to v, ARTHUR_ env, local .env,
// config-dir .env, arthur.yaml, defaults.
func Load(v *viper.Viper, opts Options) (*Config, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}
	workDir := opts.WorkDir
	if workDir == "" {
		dir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		workDir = dir
	}

	SetDefaults(v, configDir)

	var sources []string
	if !opts.TestMode {
		used, err := readConfigFile(v, opts.ConfigFile, workDir, configDir)
		if err != nil {
			return nil, err
		}
		if used != "" {
			sources = append(sources, used)
		}

		for _, envPath := range []string{filepath.Join(configDir, ".env"), filepath.Join(workDir, ".env")} {
			loaded, err := mergeDotEnv(v, envPath)
			if err != nil {
				return nil, err
			}
			if loaded {
				sources = append(sources, envPath)
			}
		}
	}

	cfg := &Config{
		StorageBackend: strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageBackend))),
		StorageDir:     v.GetString(KeyStorageDir),
		BackendURL:     strings.TrimSpace(v.GetString(KeyBackendURL)),
		DownloadDir:    v.GetString(KeyDownloadDir),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFile:        v.GetString(KeyLogFile),
		NoColor:        v.GetBool(KeyNoColor),
		Sources:        sources,
	}

	timeout, err := parseTimeout(v.GetString(KeyBackendTimeout))
	if err != nil {
		return nil, err
	}
	cfg.BackendTimeout = timeout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	known := false
	for _, b := range storage.Backends() {
		if c.StorageBackend == b {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q (expected one of %s)", storage.ErrUnknownBackend, c.StorageBackend, strings.Join(storage.Backends(), ", "))
	}
	if c.StorageBackend != storage.BackendMemory && c.StorageDir == "" {
		return fmt.Errorf("%s must be set for the %s backend", KeyStorageDir, c.StorageBackend)
	}
	if c.BackendTimeout < 0 {
		return fmt.Errorf("%s must not be negative", KeyBackendTimeout)
	}
	return nil
}

func readConfigFile(v *viper.Viper, explicit, workDir, configDir string) (string, error) {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", explicit, err)
		}
		return v.ConfigFileUsed(), nil
	}

	v.SetConfigName("arthur")
	v.SetConfigType("yaml")
	v.AddConfigPath(workDir)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// mergeDotEnv merges the ARTHUR_ entries of a .env file into v's config layer.
// A missing file is not an error.
func mergeDotEnv(v *viper.Viper, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read .env file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return false, fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}

	settings := make(map[string]any)
	for name, value := range envMap {
		key, ok := envNameToKey(name)
		if !ok {
			continue
		}
		section, field, _ := strings.Cut(key, ".")
		nested, _ := settings[section].(map[string]any)
		if nested == nil {
			nested = make(map[string]any)
			settings[section] = nested
		}
		nested[field] = value
	}
	if len(settings) == 0 {
		return true, nil
	}
	if err := v.MergeConfigMap(settings); err != nil {
		return false, fmt.Errorf("failed to merge .env file %s: %w", path, err)
	}
	return true, nil
}

// envNameToKey maps ARTHUR_STORAGE_BACKEND to storage.backend.
func envNameToKey(name string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.ToUpper(name), EnvPrefix+"_")
	if !ok || rest == "" {
		return "", false
	}
	section, field, ok := strings.Cut(strings.ToLower(rest), "_")
	if !ok || section == "" || field == "" {
		return "", false
	}
	return section + "." + field, true
}

func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", KeyBackendTimeout, raw, err)
	}
	return d, nil
}

package file

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/newmesstuff/go-polarion/config"
	"github.com/newmesstuff/go-polarion/faults"
)

// Load reads the client configuration from explicitPath, falling back to
// the POLARION_CONFIG_FILE environment variable and then the default path.
func Load(explicitPath string) (config.Config, error) {
	path, err := ResolveConfigPath(explicitPath)
	if err != nil {
		return config.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Config{}, notFoundError("config file not found: "+path, err)
		}
		return config.Config{}, internalError("failed to read config file", err)
	}
	return Decode(data)
}

func Decode(data []byte) (config.Config, error) {
	var cfg config.Config

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return config.Config{}, validationError("invalid config yaml", err)
	}

	if strings.TrimSpace(cfg.Server.BaseURL) == "" {
		return config.Config{}, validationError("server.base-url is required", nil)
	}
	return cfg, nil
}

// Save writes the configuration to explicitPath (or the resolved default),
// creating parent directories as needed.
func Save(explicitPath string, cfg config.Config) (string, error) {
	path, err := ResolveConfigPath(explicitPath)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", internalError("failed to encode config yaml", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", internalError("failed to create config directory", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", internalError("failed to write config file", err)
	}
	return path, nil
}

func ResolveConfigPath(explicitPath string) (string, error) {
	path := explicitPath
	if path == "" {
		path = os.Getenv(config.ConfigFileEnvVar)
	}
	if path == "" {
		path = config.DefaultConfigPath
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", internalError("failed to resolve user home directory", err)
		}
		if path == "~" {
			path = homeDir
		} else {
			path = filepath.Join(homeDir, strings.TrimPrefix(path, "~/"))
		}
	}

	cleanPath := filepath.Clean(path)
	if cleanPath == "." {
		return "", validationError("config path is invalid", errors.New("resolved to current directory"))
	}
	return cleanPath, nil
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func notFoundError(message string, cause error) error {
	return faults.NewTypedError(faults.NotFoundError, message, cause)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}

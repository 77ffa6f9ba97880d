// Package config handles loading and validating configuration from
// command-line values, environment variables and config files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted when no explicit value is given.
const (
	EnvServer   = "JIRA_API_SERVER"
	EnvUsername = "JIRA_API_USERNAME"
	EnvToken    = "JIRA_API_TOKEN"
)

// ConfigFileName is the optional per-user config file in the home directory.
const ConfigFileName = ".jira-create-issue.yaml"

// LoginInfo holds the Jira connection settings. It is built once per
// run and never mutated.
type LoginInfo struct {
	Server string
	User   string
	Token  string
}

// UndefinedVariableError reports a credential that was neither passed
// explicitly nor found in the environment or config file.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return e.Name + " variable is not specified"
}

// fileConfig mirrors the optional ~/.jira-create-issue.yaml file.
type fileConfig struct {
	Server string `yaml:"server,omitempty"`
	User   string `yaml:"user,omitempty"`
	Token  string `yaml:"token,omitempty"`
}

// LoadEnv loads environment variables from .env file.
// It searches in the current directory and parent directories.
func LoadEnv() error {
	dir, err := os.Getwd()
	if err != nil {
		return nil // Ignore error, rely on environment variables
	}

	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil // No .env file found, rely on environment variables
}

// loadFileConfig reads the per-user config file. A missing file is not
// an error; a malformed one is.
func loadFileConfig() (fileConfig, error) {
	var cfg fileConfig
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(filepath.Join(home, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}

// resolveValue picks the first available source for one credential:
// explicit value, then the named environment variable, then the config
// file entry. An empty resolved value is an error.
func resolveValue(explicit, envName, fromFile, description string) (string, error) {
	value := explicit
	if value == "" {
		if v, ok := os.LookupEnv(envName); ok {
			value = v
		} else if fromFile != "" {
			value = fromFile
		} else {
			return "", &UndefinedVariableError{Name: envName}
		}
	}
	if len(value) == 0 {
		return "", fmt.Errorf("%s is empty", description)
	}
	return value, nil
}

// ResolveLogin builds the Jira login info from explicit values or, for
// each value left empty, from environment variables and the per-user
// config file. It fails before any network call is made.
func ResolveLogin(server, user, token string) (*LoginInfo, error) {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return nil, err
	}

	resolvedServer, err := resolveValue(server, EnvServer, fileCfg.Server, "Jira API server name")
	if err != nil {
		return nil, err
	}

	resolvedUser, err := resolveValue(user, EnvUsername, fileCfg.User, "Jira API user name")
	if err != nil {
		return nil, err
	}

	resolvedToken, err := resolveValue(token, EnvToken, fileCfg.Token, "Jira API secure token string")
	if err != nil {
		return nil, err
	}

	return &LoginInfo{
		Server: resolvedServer,
		User:   resolvedUser,
		Token:  resolvedToken,
	}, nil
}

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the settings file.
const (
	EnvIndexURL    = "ENVSPEC_INDEX_URL"
	EnvIndexTTL    = "ENVSPEC_INDEX_TTL"
	EnvParallelism = "ENVSPEC_PARALLELISM"
	EnvIgnore      = "ENVSPEC_IGNORE"
)

// ruleOff disables a rule in the rules section of the settings file.
const ruleOff = "off"

// SettingsFile is the structure of envspec.yaml.
type SettingsFile struct {
	// Rules maps rule IDs to a severity name or "off".
	Rules       map[string]string `yaml:"rules"`
	Index       IndexSettings     `yaml:"index"`
	Parallelism int               `yaml:"parallelism"`
}

// IndexSettings configures the channel package index.
type IndexSettings struct {
	URL string `yaml:"url"`
	TTL string `yaml:"ttl"`
}

// LoadSettings reads envspec.yaml and .env from dir and applies ENVSPEC_*
// overrides. Variables set in the process environment win over .env.
func (l *Loader) LoadSettings(dir string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	file, err := readSettingsFile(filepath.Join(dir, domain.SettingsFileName))
	if err != nil {
		return settings, err
	}
	if file != nil {
		if err := applySettingsFile(&settings, file); err != nil {
			return settings, zerr.With(err, "path", filepath.Join(dir, domain.SettingsFileName))
		}
	}

	env, err := readEnv(filepath.Join(dir, domain.EnvFileName))
	if err != nil {
		return settings, err
	}
	if err := applyEnv(&settings, env); err != nil {
		return settings, err
	}

	return settings, settings.Validate()
}

func readSettingsFile(path string) (*SettingsFile, error) {
	// #nosec G304 -- path is derived from the descriptor directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSettingsReadFailed.Error()), "path", path)
	}

	var file SettingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSettingsParseFailed.Error()), "path", path)
	}
	return &file, nil
}

func applySettingsFile(settings *domain.Settings, file *SettingsFile) error {
	for rule, value := range file.Rules {
		id := domain.RuleID(rule)
		if strings.EqualFold(strings.TrimSpace(value), ruleOff) {
			settings.Ignore = append(settings.Ignore, id)
			continue
		}
		sev, err := domain.ParseSeverity(value)
		if err != nil {
			return zerr.With(err, "rule", rule)
		}
		settings.Severity[id] = sev
	}

	if file.Index.URL != "" {
		settings.IndexURL = strings.TrimSuffix(file.Index.URL, "/")
	}
	if file.Index.TTL != "" {
		ttl, err := time.ParseDuration(file.Index.TTL)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrSettingsParseFailed.Error()), "field", "index.ttl")
		}
		settings.IndexTTL = ttl
	}
	if file.Parallelism > 0 {
		settings.Parallelism = file.Parallelism
	}
	return nil
}

// readEnv merges the .env file with ENVSPEC_* variables of the process.
func readEnv(path string) (map[string]string, error) {
	env := map[string]string{}
	if _, err := os.Stat(path); err == nil {
		dotenv, err := godotenv.Read(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSettingsParseFailed.Error()), "path", path)
		}
		env = dotenv
	}
	for _, key := range []string{EnvIndexURL, EnvIndexTTL, EnvParallelism, EnvIgnore} {
		if value := os.Getenv(key); value != "" {
			env[key] = value
		}
	}
	return env, nil
}

func applyEnv(settings *domain.Settings, env map[string]string) error {
	if v := env[EnvIndexURL]; v != "" {
		settings.IndexURL = strings.TrimSuffix(v, "/")
	}
	if v := env[EnvIndexTTL]; v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrSettingsParseFailed.Error()), "variable", EnvIndexTTL)
		}
		settings.IndexTTL = ttl
	}
	if v := env[EnvParallelism]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return zerr.With(zerr.With(domain.ErrSettingsParseFailed, "variable", EnvParallelism), "value", v)
		}
		settings.Parallelism = n
	}
	for rule := range strings.SplitSeq(env[EnvIgnore], ",") {
		if rule = strings.TrimSpace(rule); rule != "" {
			settings.Ignore = append(settings.Ignore, domain.RuleID(rule))
		}
	}
	return nil
}

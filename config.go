package huntglitch

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment variables consulted by [FromEnv]. The HUNTGLITCH_-prefixed
// key names take precedence; the bare names are accepted for compatibility
// with existing HuntGlitch integrations.
const (
	EnvProjectKey     = "HUNTGLITCH_PROJECT_KEY"
	EnvDeliverableKey = "HUNTGLITCH_DELIVERABLE_KEY"
	EnvRetries        = "HUNTGLITCH_RETRIES"
	EnvTimeout        = "HUNTGLITCH_TIMEOUT"
	EnvSilentFailures = "HUNTGLITCH_SILENT_FAILURES"

	envProjectKeyCompat     = "PROJECT_KEY"
	envDeliverableKeyCompat = "DELIVERABLE_KEY"
)

// Config holds the resolved client settings. It is read-only after
// construction; hand it to [NewFromConfig].
type Config struct {
	ProjectKey     string
	DeliverableKey string
	SilentFailures bool
	Retries        int
	Timeout        time.Duration
}

// FromEnv resolves a Config from the OS environment and, when present, a
// .env file discovered along the given search paths (the current directory
// when none are given). OS environment values take precedence over file
// values. Missing credential keys or unparseable values are a
// *ConfigurationError.
func FromEnv(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &ConfigurationError{Field: "env file", Reason: err.Error()}
		}
	}

	cfg := &Config{
		ProjectKey:     firstSet(v, EnvProjectKey, envProjectKeyCompat),
		DeliverableKey: firstSet(v, EnvDeliverableKey, envDeliverableKeyCompat),
		Retries:        3,
		Timeout:        10 * time.Second,
	}

	if cfg.ProjectKey == "" {
		return nil, &ConfigurationError{Field: EnvProjectKey, Reason: "must be set"}
	}
	if cfg.DeliverableKey == "" {
		return nil, &ConfigurationError{Field: EnvDeliverableKey, Reason: "must be set"}
	}

	if s := strings.TrimSpace(v.GetString(EnvRetries)); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, &ConfigurationError{Field: EnvRetries, Reason: "must be a non-negative integer"}
		}
		cfg.Retries = n
	}

	if s := strings.TrimSpace(v.GetString(EnvTimeout)); s != "" {
		d, err := parseTimeout(s)
		if err != nil || d <= 0 {
			return nil, &ConfigurationError{Field: EnvTimeout, Reason: "must be a positive duration or whole seconds"}
		}
		cfg.Timeout = d
	}

	if s := strings.TrimSpace(v.GetString(EnvSilentFailures)); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, &ConfigurationError{Field: EnvSilentFailures, Reason: "must be a boolean"}
		}
		cfg.SilentFailures = b
	}

	return cfg, nil
}

// parseTimeout accepts Go duration syntax ("15s") and bare whole seconds
// ("15"), which is what existing HuntGlitch integrations export.
func parseTimeout(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

func firstSet(v *viper.Viper, keys ...string) string {
	for _, key := range keys {
		if s := strings.TrimSpace(v.GetString(key)); s != "" {
			return s
		}
	}
	return ""
}

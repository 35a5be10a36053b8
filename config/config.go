// Package config resolves feedpipe's run configuration.
//
// Values come from, highest precedence first: command-line flags,
// positional arguments, FEEDPIPE_* environment variables, GitHub Action
// inputs (INPUT_*), an optional YAML config file, and defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/feedpipe/core"
	"github.com/gaurav-prasanna/feedpipe/core/fetch"
	"github.com/gaurav-prasanna/feedpipe/logging"
)

// Configuration keys. Flags use the same names.
const (
	KeyFeedURL      = "feed_url"
	KeyTemplateFile = "template_file"
	KeyOutputDir    = "output_dir"
	KeyUserAgent    = "user_agent"
	KeyTimeout      = "timeout"
	KeyFailFast     = "fail_fast"
	KeyLogLevel     = "log_level"
)

const envPrefix = "FEEDPIPE"

// positional lists the keys filled by positional arguments, in order.
var positional = []string{KeyFeedURL, KeyTemplateFile, KeyOutputDir}

// Config holds everything one run needs.
type Config struct {
	FeedURL      string
	TemplateFile string
	OutputDir    string
	UserAgent    string
	Timeout      time.Duration
	FailFast     bool
	LogLevel     string
}

// Load resolves a Config. flags may be nil; args are the positional
// arguments <feed_url> <template_file> <output_dir>, any of which may be
// omitted. configFile, when set, must exist.
func Load(flags *pflag.FlagSet, args []string, configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{KeyFeedURL, KeyTemplateFile, KeyOutputDir} {
		name := strings.ToUpper(key)
		if err := v.BindEnv(key, envPrefix+"_"+name, "INPUT_"+name); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	for i, arg := range args {
		if i >= len(positional) {
			return nil, fmt.Errorf("too many arguments: expected at most %d, got %d", len(positional), len(args))
		}
		key := positional[i]
		if flags != nil && flags.Changed(key) {
			continue
		}
		if arg != "" {
			v.Set(key, arg)
		}
	}

	return &Config{
		FeedURL:      strings.TrimSpace(v.GetString(KeyFeedURL)),
		TemplateFile: strings.TrimSpace(v.GetString(KeyTemplateFile)),
		OutputDir:    strings.TrimSpace(v.GetString(KeyOutputDir)),
		UserAgent:    v.GetString(KeyUserAgent),
		Timeout:      v.GetDuration(KeyTimeout),
		FailFast:     v.GetBool(KeyFailFast),
		LogLevel:     v.GetString(KeyLogLevel),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyUserAgent, fetch.DefaultUserAgent)
	v.SetDefault(KeyTimeout, fetch.DefaultTimeout)
	v.SetDefault(KeyFailFast, false)
	v.SetDefault(KeyLogLevel, logging.DefaultLevel)
}

// Validate checks required inputs, then that the template exists and the
// feed URL is absolute. It does no network activity.
func (c *Config) Validate() error {
	var missing []string
	if c.FeedURL == "" {
		missing = append(missing, KeyFeedURL)
	}
	if c.TemplateFile == "" {
		missing = append(missing, KeyTemplateFile)
	}
	if c.OutputDir == "" {
		missing = append(missing, KeyOutputDir)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required inputs: %s", strings.Join(missing, ", "))
	}

	info, err := os.Stat(c.TemplateFile)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return fmt.Errorf("%w: '%s' does not exist", core.ErrTemplateMissing, c.TemplateFile)
	}
	if err != nil {
		return fmt.Errorf("checking template file: %w", err)
	}

	parsed, err := url.Parse(c.FeedURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid feed URL: %s (must include scheme, e.g. https://example.com/feed.xml)", c.FeedURL)
	}
	return nil
}

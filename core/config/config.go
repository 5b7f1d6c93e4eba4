// Package config holds the on-disk configuration for the command
// engine and its CLI.
package config

import (
	_ "embed"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

// ConfigurationName is the file name looked up inside a config
// directory.
const ConfigurationName = "config.yaml"

// Config controls engine defaults. Zero values fall back to built-in
// behavior: an empty DefaultShell triggers platform shell discovery.
type Config struct {
	// DefaultShell overrides platform shell discovery when set.
	DefaultShell string `json:"default_shell"`
	// ShellArg is the flag passed before the command string.
	ShellArg string `json:"shell_arg"`
	// VirtualCommands enables the builtin command table.
	VirtualCommands bool `json:"virtual_commands"`
	// Mirror echoes command output to the CLI's stdio as it arrives.
	Mirror bool `json:"mirror"`
	// TraceEnv names the environment variable that gates tracing.
	TraceEnv string `json:"trace_env"`
	// ThrottleBytesPerSec rate-limits mirrored output; 0 is unlimited.
	ThrottleBytesPerSec int64 `json:"throttle_bytes_per_sec" validate:"gte=0"`
	// MaxUnstreamedLines caps buffered output of unbounded builtins
	// when no streaming sink is attached.
	MaxUnstreamedLines int `json:"max_unstreamed_lines" validate:"gte=1"`
}

// Validate the configuration for basic semantic errors.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	return validate.Struct(c)
}

// Load reads and validates a configuration from the filesystem. The
// path may name either the config file or its directory.
func Load(fsys afero.Fs, path string) (*Config, error) {
	if filepath.Base(path) != ConfigurationName {
		path = filepath.Join(path, ConfigurationName)
	}

	contents, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	var out Config
	if err := yaml.UnmarshalStrict(contents, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	var out Config
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

// Package appconfig holds the run configuration. It must not depend on other linex packages
// except leaf ones, it is the first thing bootstrap builds.
package appconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/traas-stack/linex/pkg/serializer"
	"github.com/traas-stack/linex/pkg/text"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfig = "LINEX_CONFIG"

	defaultSeparator   = "\t"
	defaultMaxLineSize = 16 * 1024 * 1024
)

type (
	// Config is read-only once loaded, nothing is written back.
	Config struct {
		LineNumbers bool   `json:"lineNumbers" yaml:"lineNumbers" toml:"lineNumbers"`
		Format      string `json:"format" yaml:"format" toml:"format"`
		Separator   string `json:"separator" yaml:"separator" toml:"separator"`
		Output      string `json:"output,omitempty" yaml:"output" toml:"output"`
		Charset     string `json:"charset" yaml:"charset" toml:"charset"`
		// MaxLineSize in bytes, longer lines are skipped with a warning
		MaxLineSize int  `json:"maxLineSize" yaml:"maxLineSize" toml:"maxLineSize"`
		Buffered    bool `json:"buffered" yaml:"buffered" toml:"buffered"`
		Verbose     bool `json:"verbose" yaml:"verbose" toml:"verbose"`
	}
)

func Default() *Config {
	return &Config{
		Format:      string(serializer.FormatColumns),
		Separator:   defaultSeparator,
		Charset:     text.UTF8,
		MaxLineSize: defaultMaxLineSize,
	}
}

// Load builds a Config from defaults, the config file and the environment, in that order.
// path falls back to $LINEX_CONFIG, an empty path means no config file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config file")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(fileBytes, c)
	case ".toml":
		err = toml.Unmarshal(fileBytes, c)
	default:
		return errors.Errorf("unsupported config file type %s, expect .yaml, .yml or .toml", path)
	}
	return errors.Wrapf(err, "parse config file %s", path)
}

func (c *Config) loadEnv() error {
	if s := os.Getenv("LINEX_FORMAT"); s != "" {
		c.Format = s
	}
	if s := os.Getenv("LINEX_SEPARATOR"); s != "" {
		c.Separator = s
	}
	if s := os.Getenv("LINEX_CHARSET"); s != "" {
		c.Charset = s
	}
	if s := os.Getenv("LINEX_OUTPUT"); s != "" {
		c.Output = s
	}

	var err error
	if s := os.Getenv("LINEX_LINE_NUMBERS"); s != "" {
		if c.LineNumbers, err = cast.ToBoolE(s); err != nil {
			return errors.Wrap(err, "LINEX_LINE_NUMBERS")
		}
	}
	if s := os.Getenv("LINEX_BUFFERED"); s != "" {
		if c.Buffered, err = cast.ToBoolE(s); err != nil {
			return errors.Wrap(err, "LINEX_BUFFERED")
		}
	}
	if s := os.Getenv("LINEX_VERBOSE"); s != "" {
		if c.Verbose, err = cast.ToBoolE(s); err != nil {
			return errors.Wrap(err, "LINEX_VERBOSE")
		}
	}
	if s := os.Getenv("LINEX_MAX_LINE_SIZE"); s != "" {
		if c.MaxLineSize, err = cast.ToIntE(s); err != nil {
			return errors.Wrap(err, "LINEX_MAX_LINE_SIZE")
		}
	}
	return nil
}

// Validate checks the values that are not checked when the pipeline is built.
func (c *Config) Validate() error {
	if _, err := serializer.ParseFormat(c.Format); err != nil {
		return err
	}
	if err := text.ValidateCharset(c.Charset); err != nil {
		return err
	}
	if c.MaxLineSize <= 0 {
		return errors.Errorf("maxLineSize must be positive, got %d", c.MaxLineSize)
	}
	return nil
}

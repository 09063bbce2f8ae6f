// Copyright 2025 seqio LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/seqio/bytecp/pkg/copier"
)

// DefaultPath is where bytecp looks for settings when --config is not given.
const DefaultPath = ".bytecp.yaml"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	DefaultSource      string `json:"default_source,omitempty" yaml:"default_source,omitempty" hcl:"default_source,optional"`
	DefaultDestination string `json:"default_destination,omitempty" yaml:"default_destination,omitempty" hcl:"default_destination,optional"`
	ProgressInterval   int64  `json:"progress_interval,omitempty" yaml:"progress_interval,omitempty" hcl:"progress_interval,optional"`
	BackupSuffix       string `json:"backup_suffix,omitempty" yaml:"backup_suffix,omitempty" hcl:"backup_suffix,optional"`
	TextMode           bool   `json:"text_mode,omitempty" yaml:"text_mode,omitempty" hcl:"text_mode,optional"`
}

// 🎁 Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// 🎯 Load loads the configuration from a file. A missing file at the default
// location is not an error; built-in defaults are used instead.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && path == DefaultPath {
		logger.Debug().Msg("no config file, using defaults")
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		logger.Debug().Str("path", path).Msg("empty config file, using defaults")
		return Default(), nil
	}

	// A bare .bytecp dotfile carries no extension, so try both markup
	// formats in turn.
	if filepath.Base(path) == ".bytecp" {
		cfg, yerr := (&YAMLParser{}).Parse(ctx, data)
		if yerr == nil {
			return cfg, nil
		}
		cfg, herr := (&HCLParser{}).Parse(ctx, data)
		if herr == nil {
			return cfg, nil
		}
		return nil, errors.Errorf("parsing %s as YAML or HCL: %w", path, yerr)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults.
func (cfg *Config) Validate() error {
	if cfg.ProgressInterval < 0 {
		return errors.Errorf("progress_interval must not be negative, got %d", cfg.ProgressInterval)
	}

	cfg.applyDefaults()

	if !strings.HasPrefix(cfg.BackupSuffix, ".") {
		return errors.Errorf("backup_suffix must start with a dot, got %q", cfg.BackupSuffix)
	}

	cfg.DefaultSource = filepath.Clean(cfg.DefaultSource)
	cfg.DefaultDestination = filepath.Clean(cfg.DefaultDestination)

	if cfg.DefaultSource == cfg.DefaultDestination {
		return errors.Errorf("default source and destination are both %s", cfg.DefaultSource)
	}

	return nil
}

func (cfg *Config) applyDefaults() {
	if cfg.DefaultSource == "" {
		cfg.DefaultSource = "source.txt"
	}
	if cfg.DefaultDestination == "" {
		cfg.DefaultDestination = "dest.txt"
	}
	if cfg.ProgressInterval == 0 {
		cfg.ProgressInterval = copier.DefaultProgressInterval
	}
	if cfg.BackupSuffix == "" {
		cfg.BackupSuffix = copier.DefaultBackupSuffix
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s -> %s (progress every %d bytes)",
		cfg.DefaultSource, cfg.DefaultDestination, cfg.ProgressInterval)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

func (p *JSONParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".json")
}

func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

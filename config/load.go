package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a config file syntax.
type Format string

const (
	// FormatYAML is the default config syntax.
	FormatYAML Format = "yaml"

	// FormatTOML is selected for files ending in .toml.
	FormatTOML Format = "toml"
)

// FormatFor picks the syntax for a config path from its extension.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// File is the on-disk shape of a config file. Nil fields were not set and
// keep their defaults. Unknown keys are ignored.
type File struct {
	DefaultLimit *int      `yaml:"default_limit" toml:"default_limit" json:"default_limit,omitempty" jsonschema:"minimum=1,default=4000,description=Token ceiling for files no other rule matches"`
	Limits       *Limits   `yaml:"limits" toml:"-" json:"limits,omitempty" jsonschema:"description=Per-file or per-pattern limits; the first key contained in a path wins"`
	Exclude      *[]string `yaml:"exclude" toml:"exclude" json:"exclude,omitempty" jsonschema:"description=Patterns for files that are never checked"`
	TotalLimit   *int      `yaml:"total_limit" toml:"total_limit" json:"total_limit,omitempty" jsonschema:"minimum=1,description=Ceiling on the sum of tokens across all checked files"`
	FailOnExceed *bool     `yaml:"fail_on_exceed" toml:"fail_on_exceed" json:"fail_on_exceed,omitempty" jsonschema:"default=true,description=Whether violations fail the run"`
}

// Load reads the config file at path. A missing or empty file yields the
// default policy. Any read, parse or validation failure is an *Error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	cfg, err := Parse(data, FormatFor(path))
	if err != nil {
		var cfgErr *Error
		if errors.As(err, &cfgErr) && cfgErr.Path == "" {
			cfgErr.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes config file content in the given format and merges it over
// the defaults key by key.
func Parse(data []byte, format Format) (*Config, error) {
	var (
		f   *File
		err error
	)
	switch format {
	case FormatTOML:
		f, err = parseTOML(data)
	default:
		f, err = parseYAML(data)
	}
	if err != nil {
		return nil, &Error{Err: err}
	}
	if f == nil {
		return Default(), nil
	}
	return f.Config()
}

// Config merges the file over the defaults and validates the result.
func (f *File) Config() (*Config, error) {
	var opts []Option
	if f.DefaultLimit != nil {
		opts = append(opts, WithDefaultLimit(*f.DefaultLimit))
	}
	if f.Limits != nil {
		opts = append(opts, WithLimits(f.Limits))
	}
	if f.Exclude != nil {
		opts = append(opts, WithExclude(*f.Exclude))
	}
	if f.TotalLimit != nil {
		opts = append(opts, WithTotalLimit(*f.TotalLimit))
	}
	if f.FailOnExceed != nil {
		opts = append(opts, WithFailOnExceed(*f.FailOnExceed))
	}
	return New(opts...)
}

func parseYAML(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config file must contain a YAML mapping, got: %s", nodeKind(root))
	}
	if err := checkNulls(root); err != nil {
		return nil, err
	}

	var f File
	if err := root.Decode(&f); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &f, nil
}

// checkNulls rejects an explicit null for keys that have no null meaning.
// A null limits, exclude or total_limit is left to the decoder and reads as
// empty limits, the default excludes and no total limit respectively.
func checkNulls(root *yaml.Node) error {
	for i := 0; i+1 < len(root.Content); i += 2 {
		value := root.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!null" {
			continue
		}
		switch root.Content[i].Value {
		case "default_limit":
			return fmt.Errorf("%w: default_limit must be a positive integer, got: null", ErrInvalid)
		case "fail_on_exceed":
			return fmt.Errorf("%w: fail_on_exceed must be a boolean, got: null", ErrInvalid)
		}
	}
	return nil
}

// tomlFile mirrors File; limit order comes from the decoder's key order.
type tomlFile struct {
	File
	Limits map[string]int `toml:"limits"`
}

func parseTOML(data []byte) (*File, error) {
	var tf tomlFile
	md, err := toml.Decode(string(data), &tf)
	if err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	if len(md.Keys()) == 0 {
		return nil, nil
	}
	if md.IsDefined("limits") {
		limits := NewLimits()
		for _, key := range md.Keys() {
			if len(key) == 2 && key[0] == "limits" {
				limits.Set(key[1], tf.Limits[key[1]])
			}
		}
		tf.File.Limits = limits
	}
	return &tf.File, nil
}

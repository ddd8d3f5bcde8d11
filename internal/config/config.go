// Package config loads importer settings from YAML, TOML or JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/sceneswap/pkg/domain"
	"github.com/aretw0/sceneswap/pkg/scenefile"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config file is given. It may be absent.
const DefaultPath = "~/.config/sceneswap/config.yaml"

// Load reads the config file at path on top of domain.DefaultConfig.
// An empty path means DefaultPath; only an explicitly named file must exist.
func Load(path string) (domain.Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("invalid config path %q: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data, filepath.Ext(expanded))
}

// Parse decodes data in the format named by ext (".yaml", ".yml", ".toml"
// or ".json") on top of the defaults and validates the result.
func Parse(data []byte, ext string) (domain.Config, error) {
	raw := make(map[string]any)
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return domain.Config{}, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := domain.DefaultConfig()
	if err := Decode(raw, &cfg); err != nil {
		return domain.Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Decode applies the keys of raw onto cfg. Unknown keys are rejected.
func Decode(raw map[string]any, cfg *domain.Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks values the importer cannot start with.
func Validate(cfg domain.Config) error {
	if _, err := scenefile.Lookup(cfg.SceneFormat); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if strings.TrimSpace(string(cfg.TriggerKind)) == "" {
		return fmt.Errorf("invalid config: trigger_kind cannot be empty")
	}
	return nil
}

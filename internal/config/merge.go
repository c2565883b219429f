package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyBatching  = "batching"
	keySelection = "selection"
	keyStore     = "store"
	keyOutput    = "output"
	keyLogging   = "logging"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. A section present in the overlay replaces the whole section in
// target; absent sections are left unchanged. Unknown keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// unmarshalSection decodes node into a fresh zero value of the section so the
// overlay replaces it completely.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyBatching:
		var v BatchingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Batching = v
	case keySelection:
		var v SelectionConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Selection = v
	case keyStore:
		var v StoreConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Store = v
	case keyOutput:
		var v OutputConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	}
	return nil
}

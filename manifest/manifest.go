// Package manifest persists the per-directory records that make
// reassembly deterministic: the root key order of the source document
// and the multi-level decomposition rules applied to the fragment tree.
package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
)

const (
	// KeyOrderFile holds the root child keys in original document order.
	KeyOrderFile = ".key_order.json"
	// ConfigFile holds the multi-level rules needed to reverse a
	// second-level decomposition.
	ConfigFile = ".multi_level.json"
)

// Rule describes one multi-level decomposition: which fragment files to
// match, which element to strip out of them, and how to wrap the pieces
// back together on reassembly.
type Rule struct {
	FilePattern      string `json:"file_pattern"`
	RootToStrip      string `json:"root_to_strip"`
	UniqueIDElements string `json:"unique_id_elements"`
	PathSegment      string `json:"path_segment"`
	WrapRootElement  string `json:"wrap_root_element"`
	WrapXMLNS        string `json:"wrap_xmlns"`
}

type Config struct {
	Rules []Rule `json:"rules"`
}

// SaveKeyOrder writes the key-order manifest into dir.
func SaveKeyOrder(dir string, keys []string) error {
	d, err := gojson.Marshal(keys)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, KeyOrderFile), d, 0o644)
}

// LoadKeyOrder reads the key-order manifest from dir. A missing file is
// not an error: ordering then falls back to filesystem order.
func LoadKeyOrder(dir string) ([]string, error) {
	d, err := os.ReadFile(filepath.Join(dir, KeyOrderFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var keys []string
	if err := gojson.Unmarshal(d, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// SaveConfig writes the multi-level configuration record into dir.
func SaveConfig(dir string, cfg *Config) error {
	d, err := gojson.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ConfigFile), d, 0o644)
}

// LoadConfig reads the multi-level configuration from dir, or nil when
// the directory has none.
func LoadConfig(dir string) (*Config, error) {
	d, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := gojson.Unmarshal(d, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PathSegmentFromFilePattern derives the fragment subdirectory name from
// a file pattern, e.g. "programProcesses-meta" yields "programProcesses".
func PathSegmentFromFilePattern(pattern string) string {
	if i := strings.IndexByte(pattern, '-'); i >= 0 {
		return pattern[:i]
	}
	return pattern
}

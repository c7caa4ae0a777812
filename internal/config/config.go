// Package config loads pepfix.toml.
//
// The file is optional. When present it is found by walking up from the
// working directory, the same way a project manifest is located:
//
//	[rules]
//	comment_spacing = true
//	unicode_nfc = false
//	decorators = true
//	def_keywords = ["def", "async def"]
//
//	[run]
//	extensions = [".py", ".pyi"]
//	jobs = 4
//	cache = true
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by Find.
const FileName = "pepfix.toml"

// Config mirrors pepfix.toml.
type Config struct {
	Rules RulesConfig `toml:"rules"`
	Run   RunConfig   `toml:"run"`
}

// RulesConfig selects optional rules and their parameters.
type RulesConfig struct {
	CommentSpacing bool     `toml:"comment_spacing"`
	UnicodeNFC     bool     `toml:"unicode_nfc"`
	Decorators     bool     `toml:"decorators"`
	DefKeywords    []string `toml:"def_keywords"`
}

// RunConfig controls batch behaviour.
type RunConfig struct {
	Extensions []string `toml:"extensions"`
	Jobs       int      `toml:"jobs"`
	Cache      bool     `toml:"cache"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Rules: RulesConfig{
			DefKeywords: []string{"def"},
		},
		Run: RunConfig{
			Extensions: []string{".py"},
		},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads the explicit path when given, otherwise the nearest
// pepfix.toml above startDir, otherwise Default. The returned string is the
// file that was used ("" for defaults).
func Resolve(explicit, startDir string) (Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate rejects values the driver cannot use.
func (c Config) Validate() error {
	if c.Run.Jobs < 0 {
		return fmt.Errorf("[run].jobs must not be negative, got %d", c.Run.Jobs)
	}
	for _, kw := range c.Rules.DefKeywords {
		if strings.TrimSpace(kw) == "" {
			return errors.New("[rules].def_keywords must not contain empty entries")
		}
	}
	for _, ext := range c.Run.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("[run].extensions entry %q must start with '.'", ext)
		}
	}
	return nil
}

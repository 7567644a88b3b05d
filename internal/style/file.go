package style

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the style file looked up next to tree documents.
const FileName = "blanklines.toml"

const (
	keyBasedOn          = "based_on_style"
	keyTopLevel         = "blank_lines_around_top_level_definition"
	keyBetweenClassDefs = "blank_lines_between_class_defs"
)

type fileConfig struct {
	Style struct {
		BasedOn          string `toml:"based_on_style"`
		TopLevel         int    `toml:"blank_lines_around_top_level_definition"`
		BetweenClassDefs int    `toml:"blank_lines_between_class_defs"`
	} `toml:"style"`
}

// LoadFile parses a style file. Keys missing from [style] keep the values
// of the base style.
func LoadFile(path string) (Style, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Style{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	s, err := fromConfig(cfg, meta)
	if err != nil {
		return Style{}, fmt.Errorf("%s: %w", path, err)
	}
	s.Source = path
	return s, nil
}

// Parse decodes style TOML held in memory.
func Parse(data string) (Style, error) {
	var cfg fileConfig
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Style{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return fromConfig(cfg, meta)
}

func fromConfig(cfg fileConfig, meta toml.MetaData) (Style, error) {
	for _, key := range meta.Undecoded() {
		if len(key) > 0 && key[0] == "style" {
			return Style{}, fmt.Errorf("%w: %s", ErrUnknownOption, key.String())
		}
	}
	base := DefaultPreset
	if meta.IsDefined("style", keyBasedOn) {
		base = cfg.Style.BasedOn
	}
	s, err := Preset(base)
	if err != nil {
		return Style{}, err
	}
	if meta.IsDefined("style", keyTopLevel) {
		s.TopLevel = cfg.Style.TopLevel
	}
	if meta.IsDefined("style", keyBetweenClassDefs) {
		s.BetweenClassDefs = cfg.Style.BetweenClassDefs
	}
	if err := s.Validate(); err != nil {
		return Style{}, err
	}
	return s, nil
}

// FindFile walks up from startDir to locate blanklines.toml.
func FindFile(startDir string) (path string, ok bool, err error) {
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

// WriteTOML prints the style in the file format.
func (s Style) WriteTOML(w io.Writer) error {
	var cfg fileConfig
	cfg.Style.BasedOn = s.BasedOn
	cfg.Style.TopLevel = s.TopLevel
	cfg.Style.BetweenClassDefs = s.BetweenClassDefs
	if s.Source != "" {
		if _, err := fmt.Fprintf(w, "# resolved from %s\n", s.Source); err != nil {
			return err
		}
	}
	return toml.NewEncoder(w).Encode(cfg)
}

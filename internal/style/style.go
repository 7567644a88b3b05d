// Package style resolves the two knobs the blank-line engine reads: the
// blank lines around top-level definitions and the blank lines between
// methods of one class.
package style

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Option names as looked up by the engine.
const (
	OptTopLevel         = "BLANK_LINES_AROUND_TOP_LEVEL_DEFINITION"
	OptBetweenClassDefs = "BLANK_LINES_BETWEEN_CLASS_DEFS"
)

var (
	ErrUnknownOption = errors.New("unknown style option")
	ErrUnknownPreset = errors.New("unknown base style")
	ErrInvalidValue  = errors.New("invalid style value")
)

// Lookup is the read-only accessor the engine consumes.
type Lookup interface {
	Int(option string) int
}

// Style is a resolved configuration.
type Style struct {
	BasedOn          string
	TopLevel         int
	BetweenClassDefs int
	// Source is the file the style was loaded from; empty for presets.
	Source string
}

// Int implements Lookup. Unknown options are programming errors.
func (s Style) Int(option string) int {
	switch option {
	case OptTopLevel:
		return s.TopLevel
	case OptBetweenClassDefs:
		return s.BetweenClassDefs
	}
	panic(fmt.Errorf("%w: %s", ErrUnknownOption, option))
}

// Validate checks value ranges. The between-class value may be -1,
// which behaves like 0 because the engine floors it.
func (s Style) Validate() error {
	if s.TopLevel < 0 {
		return fmt.Errorf("%w: %s must be >= 0, got %d", ErrInvalidValue, keyTopLevel, s.TopLevel)
	}
	if s.BetweenClassDefs < -1 {
		return fmt.Errorf("%w: %s must be >= -1, got %d", ErrInvalidValue, keyBetweenClassDefs, s.BetweenClassDefs)
	}
	return nil
}

const DefaultPreset = "pep8"

var presets = map[string]Style{
	"pep8":     {BasedOn: "pep8", TopLevel: 2, BetweenClassDefs: 1},
	"google":   {BasedOn: "google", TopLevel: 2, BetweenClassDefs: 1},
	"facebook": {BasedOn: "facebook", TopLevel: 2, BetweenClassDefs: 1},
}

// Default returns the pep8 style.
func Default() Style {
	return presets[DefaultPreset]
}

// Preset returns a named base style. Names are matched case-insensitively.
func Preset(name string) (Style, error) {
	s, ok := presets[cases.Fold().String(strings.TrimSpace(name))]
	if !ok {
		return Style{}, fmt.Errorf("%w %q (known: %v)", ErrUnknownPreset, name, PresetNames())
	}
	return s, nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

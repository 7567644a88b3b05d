package style

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables consulted after the style file.
const (
	EnvTopLevel         = "BLANKLINES_TOP_LEVEL"
	EnvBetweenClassDefs = "BLANKLINES_BETWEEN_CLASS_DEFS"
	EnvStyleFile        = "BLANKLINES_STYLE"
)

// EnvFunc matches os.LookupEnv.
type EnvFunc func(key string) (string, bool)

// ApplyEnv overrides s with integer values found in the environment.
func ApplyEnv(s Style, env EnvFunc) (Style, error) {
	if env == nil {
		env = os.LookupEnv
	}
	overrides := []struct {
		name string
		dst  *int
	}{
		{EnvTopLevel, &s.TopLevel},
		{EnvBetweenClassDefs, &s.BetweenClassDefs},
	}
	for _, o := range overrides {
		raw, ok := env(o.name)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Style{}, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidValue, o.name, raw)
		}
		*o.dst = v
	}
	if err := s.Validate(); err != nil {
		return Style{}, err
	}
	return s, nil
}

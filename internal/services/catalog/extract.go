package catalog

import (
	"fmt"
	"strconv"

	"github.com/avdwal/rioview/internal/models"
)

// Candidate keys probed in order; the first present, non-empty value wins.
// Program shapes vary by education sector (HO, MBO, VO), so none of these
// keys is guaranteed to exist.
var (
	programNameKeys  = []string{"naam", "crohoNaam", "volledigeNaam"}
	programLevelKeys = []string{"niveau", "EQFniveau"}
	levelCodeKeys    = []string{"code", "waarde"}
)

// extractProgramName returns the program's display name, or nil when no
// candidate key holds a usable value.
func extractProgramName(program models.Document) *string {
	for _, key := range programNameKeys {
		if s := program.StringField(key); s != "" {
			return &s
		}
	}
	return nil
}

// extractProgramLevel returns the program's level. A plain string passes
// through unchanged; a structured level object is probed for a code or value
// field, falling back to a string rendering of the whole object.
func extractProgramLevel(program models.Document) *string {
	for _, key := range programLevelKeys {
		v, ok := program[key]
		if !ok || v == nil {
			continue
		}

		switch level := v.(type) {
		case string:
			if level == "" {
				continue
			}
			return &level
		case map[string]any:
			for _, codeKey := range levelCodeKeys {
				if code, ok := level[codeKey]; ok && code != nil {
					if s := stringify(code); s != "" {
						return &s
					}
				}
			}
			s := fmt.Sprintf("%v", level)
			return &s
		default:
			if s := stringify(v); s != "" {
				return &s
			}
		}
	}
	return nil
}

// stringify renders a scalar JSON value as a string. Whole numbers are
// rendered without a fraction (JSON numbers decode as float64).
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
